package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatch(t *testing.T) {
	t.Run("collapses multiple writes into a single flush", func(t *testing.T) {
		a := NewSignal(1)
		b := NewSignal(2)
		runs := 0

		NewEffect(func() func() {
			a.Read()
			b.Read()
			runs++
			return nil
		})

		Batch(func() {
			a.Write(10)
			b.Write(20)
		})

		assert.Equal(t, 2, runs)
	})
}

func TestOnSettled(t *testing.T) {
	t.Run("fires once a flush and its chain-triggered effects fully drain", func(t *testing.T) {
		a := NewSignal(0)
		b := NewSignal(0)
		var log []string

		NewEffect(func() func() {
			b.Write(a.Read() * 2)
			return nil
		})
		NewEffect(func() func() {
			log = append(log, "b="+itoa(b.Read()))
			return nil
		})

		OnSettled(func() { log = append(log, "settled") })

		a.Write(5)

		assert.Equal(t, []string{"b=0", "b=10", "settled"}, log)
	})

	t.Run("fires once, not on every subsequent flush", func(t *testing.T) {
		count := NewSignal(0)
		var log []string

		NewEffect(func() func() {
			log = append(log, "changed "+itoa(count.Read()))
			return nil
		})

		OnSettled(func() { log = append(log, "settled") })

		count.Write(10)
		count.Write(20)

		assert.Equal(t, []string{
			"changed 0",
			"changed 10",
			"settled",
			"changed 20",
		}, log)
	})
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
