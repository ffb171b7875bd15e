package reactor

import "github.com/nilgrad/reactor/internal/core"

// Batch defers flushing until fn returns, so multiple writes collapse
// into a single propagation pass. Batches nest: only the outermost call
// triggers a flush.
func Batch(fn func()) {
	core.GetRuntime().Batch(fn)
}

// Flush synchronously drains the batched dirty queue. Idempotent, and a
// no-op if nothing is dirty. Exposed for hosts that want deterministic
// control instead of relying on the default synchronous scheduling.
func Flush() {
	core.GetRuntime().Flush()
}

// OnSettled registers fn to run once the current (or next) flush fully
// drains, including any effects or computeds it transitively triggers.
// Useful for tests and hosts that want to wait for quiescence.
func OnSettled(fn func()) {
	core.GetRuntime().Scheduler().OnSettled(fn)
}

// SetScheduler installs the host's microtask mechanism. The default,
// SyncHostScheduler, runs every flush immediately; a host with its own
// event loop can inject one that queues instead.
func SetScheduler(host core.HostScheduler) {
	core.GetRuntime().Scheduler().SetHost(host)
}
