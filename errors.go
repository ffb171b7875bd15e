package reactor

import "github.com/nilgrad/reactor/internal/core"

// CircularDependencyError is panicked when a computed reads itself,
// directly or transitively, during its own evaluation. It propagates
// synchronously to the caller.
type CircularDependencyError = core.CircularDependencyError

// DisposedScopeError is panicked by Scope.Dispose or Scope.Extend when
// called on a scope that has already been disposed.
type DisposedScopeError = core.DisposedScopeError
