package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read/write roundtrip", func(t *testing.T) {
		s := NewSignal(1)
		assert.Equal(t, 1, s.Read())
		s.Write(2)
		assert.Equal(t, 2, s.Read())
	})

	t.Run("peek does not establish a dependency", func(t *testing.T) {
		s := NewSignal(1)
		runs := 0

		NewEffect(func() func() {
			s.Peek()
			runs++
			return nil
		})

		s.Write(2)
		assert.Equal(t, 1, runs)
	})

	t.Run("custom equals controls no-op detection", func(t *testing.T) {
		type point struct{ x, y int }
		s := NewSignal(point{1, 1})
		s.SetEquals(func(a, b point) bool { return a.x == b.x })

		runs := 0
		NewEffect(func() func() {
			s.Read()
			runs++
			return nil
		})

		s.Write(point{1, 99}) // x unchanged under the custom equals
		assert.Equal(t, 1, runs)

		s.Write(point{2, 99})
		assert.Equal(t, 2, runs)
	})
}
