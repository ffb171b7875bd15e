package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives from a signal", func(t *testing.T) {
		count := NewSignal(0)
		doubled := NewComputed(func() int { return count.Read() * 2 })

		assert.Equal(t, 0, doubled.Read())
		count.Write(21)
		assert.Equal(t, 42, doubled.Read())
	})

	t.Run("lazy bail-out via custom equals", func(t *testing.T) {
		count := NewSignal(0)
		parity := NewComputed(func() string {
			if count.Read()%2 == 0 {
				return "even"
			}
			return "odd"
		})
		parity.SetEquals(func(a, b string) bool { return a == b })

		var log []string
		NewEffect(func() func() {
			log = append(log, parity.Read())
			return nil
		})

		count.Write(2) // still even, must not re-run the effect
		count.Write(3) // now odd

		assert.Equal(t, []string{"even", "odd"}, log)
	})

	t.Run("diamond stays glitch-free through an effect", func(t *testing.T) {
		count := NewSignal(0)
		double := NewComputed(func() int { return count.Read() * 2 })
		quad := NewComputed(func() int { return count.Read() * 4 })

		var log []string
		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("%d %d", double.Read(), quad.Read()))
			return nil
		})

		count.Write(10)

		assert.Equal(t, []string{"0 0", "20 40"}, log)
	})
}
