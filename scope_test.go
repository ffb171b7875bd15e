package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope(t *testing.T) {
	t.Run("disposing a scope disposes effects registered within it", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		sc := NewScope(func(*Scope) {
			NewEffect(func() func() {
				count.Read()
				runs++
				return nil
			})
		}, nil)

		sc.Dispose()
		count.Write(1)

		assert.Equal(t, 1, runs)
	})

	t.Run("scope containment: effects outside the scope keep running", func(t *testing.T) {
		count := NewSignal(0)
		insideRuns, outsideRuns := 0, 0

		sc := NewScope(func(*Scope) {
			NewEffect(func() func() {
				count.Read()
				insideRuns++
				return nil
			})
		}, nil)

		NewEffect(func() func() {
			count.Read()
			outsideRuns++
			return nil
		})

		sc.Dispose()
		count.Write(1)

		assert.Equal(t, 1, insideRuns)
		assert.Equal(t, 2, outsideRuns)
	})

	t.Run("double dispose fails with DisposedScopeError", func(t *testing.T) {
		sc := NewScope(nil, nil)
		sc.Dispose()
		assert.PanicsWithValue(t, &DisposedScopeError{Scope: sc.raw}, func() { sc.Dispose() })
	})

	t.Run("extend chains and returns the same scope", func(t *testing.T) {
		var log []string
		sc := NewScope(func(*Scope) { log = append(log, "init") }, nil)
		ext := sc.Extend(func(*Scope) { log = append(log, "extend") })

		assert.Same(t, sc, ext)
		assert.Equal(t, []string{"init", "extend"}, log)
	})
}
