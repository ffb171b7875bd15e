package core

import (
	"log/slog"
	"sync/atomic"
)

// logger is the package-wide slog handle used for logged-and-swallowed
// faults from effect runs and disposal cleanups. Swappable via
// SetLogger so a host can redirect or silence it; defaults to
// slog.Default().
var logger atomic.Pointer[slog.Logger]

// SetLogger installs the logger used for swallowed EffectFault and
// DisposalFault reports. A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func currentLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// logFault records a swallowed panic from an effect run or a disposal
// cleanup. Faults in user code never corrupt the graph, so these are
// reported, never re-panicked, by the scheduler itself.
func logFault(kind FaultKind, r any) {
	currentLogger().Error("reactor: swallowed fault",
		slog.String("kind", kind.String()),
		slog.Any("value", r),
	)
}
