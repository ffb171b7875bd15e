package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	X, Y int
}

func TestState(t *testing.T) {
	t.Run("field read/write is independently tracked", func(t *testing.T) {
		p := NewState(point{X: 1, Y: 2})
		runs := 0

		NewEffect(func() func() {
			Field[int](p, "X")
			runs++
			return nil
		})

		SetField(p, "Y", 99) // unrelated field, must not re-run
		assert.Equal(t, 1, runs)

		SetField(p, "X", 10)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 10, Field[int](p, "X"))
	})

	t.Run("same-value write is a no-op", func(t *testing.T) {
		p := NewState(point{X: 1, Y: 2})
		runs := 0

		NewEffect(func() func() {
			Field[int](p, "X")
			runs++
			return nil
		})

		SetField(p, "X", 1)
		assert.Equal(t, 1, runs)
	})

	t.Run("Get reacts to any field change", func(t *testing.T) {
		p := NewState(point{X: 1, Y: 2})
		runs := 0

		NewEffect(func() func() {
			p.Get()
			runs++
			return nil
		})

		SetField(p, "Y", 3)
		assert.Equal(t, 2, runs)
	})

	t.Run("unwrap identity", func(t *testing.T) {
		p := NewState(point{X: 1, Y: 2})
		assert.Equal(t, point{1, 2}, UnwrapValue(p))
		assert.Equal(t, 5, UnwrapValue(5))
	})
}

func TestSlice(t *testing.T) {
	t.Run("push advances the structural source", func(t *testing.T) {
		s := NewSlice(1, 2, 3)
		runs := 0

		NewEffect(func() func() {
			s.Len()
			runs++
			return nil
		})

		s.Push(4)
		assert.Equal(t, 2, runs)
		assert.Equal(t, []int{1, 2, 3, 4}, s.Read())
	})

	t.Run("Set on one index does not notify a consumer of another", func(t *testing.T) {
		s := NewSlice(1, 2, 3)
		runs := 0

		NewEffect(func() func() {
			s.At(0)
			runs++
			return nil
		})

		s.Set(2, 99) // untouched index
		assert.Equal(t, 1, runs)

		s.Set(0, 42)
		assert.Equal(t, 2, runs)
	})

	t.Run("splice removes and inserts", func(t *testing.T) {
		s := NewSlice(1, 2, 3, 4, 5)
		removed := s.Splice(1, 2, 20, 30, 40)
		assert.Equal(t, []int{2, 3}, removed)
		assert.Equal(t, []int{1, 20, 30, 40, 4, 5}, s.Read())
	})

	t.Run("pop and shift", func(t *testing.T) {
		s := NewSlice(1, 2, 3)

		last, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, 3, last)

		first, ok := s.Shift()
		assert.True(t, ok)
		assert.Equal(t, 1, first)

		assert.Equal(t, []int{2}, s.Read())
	})
}

func TestMapState(t *testing.T) {
	t.Run("set on a new key advances the structural source", func(t *testing.T) {
		m := NewMapState[string, int]()
		runs := 0

		NewEffect(func() func() {
			m.Len()
			runs++
			return nil
		})

		m.Set("a", 1)
		assert.Equal(t, 2, runs)

		m.Set("a", 2) // existing key, value source, not structural
		assert.Equal(t, 2, runs)
	})

	t.Run("get/has/delete", func(t *testing.T) {
		m := NewMapState[string, int]()
		m.Set("a", 1)

		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.True(t, m.Has("a"))

		m.Delete("a")
		assert.False(t, m.Has("a"))
		assert.Equal(t, 0, m.Len())
	})
}
