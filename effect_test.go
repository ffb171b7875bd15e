package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs at creation and again on change, cleanup before re-run", func(t *testing.T) {
		var log []string
		count := NewSignal(0)

		NewEffect(func() func() {
			count.Read()
			log = append(log, "running")
			return func() { log = append(log, "cleanup") }
		})

		count.Write(1)

		assert.Equal(t, []string{"running", "cleanup", "running"}, log)
	})

	t.Run("dispose stops future runs and runs final cleanup", func(t *testing.T) {
		var log []string
		count := NewSignal(0)

		e := NewEffect(func() func() {
			count.Read()
			log = append(log, "running")
			return func() { log = append(log, "cleanup") }
		})

		e.Dispose()
		count.Write(1)

		assert.Equal(t, []string{"running", "cleanup"}, log)
	})

	t.Run("self-modification defers to the next batch", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		NewEffect(func() func() {
			runs++
			if v := count.Read(); v < 3 {
				count.Write(v + 1)
			}
			return nil
		})

		assert.Equal(t, 4, runs) // 0->1->2->3, converges once identity-equal
		assert.Equal(t, 3, count.Read())
	})
}
