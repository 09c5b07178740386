// Package serialexecutor provides a serial task queue for Go: work items
// submitted concurrently from any number of goroutines run to completion one
// at a time, in strict submission order, even when an item suspends
// mid-execution awaiting I/O.
//
// # Quick Start
//
// Create an executor and submit typed work:
//
//	exec := serialexecutor.New()
//
//	greeting, err := serialexecutor.Submit(exec, func(ctx context.Context) (string, error) {
//		return "Hello", nil
//	})
//
// Submit blocks until every earlier submission has finished and the work item
// itself has run. SubmitAsync returns a Future instead, for callers that want
// to keep going and collect the result later:
//
//	fut := serialexecutor.SubmitAsync(exec, func(ctx context.Context) (int, error) {
//		return slowCount(ctx)
//	})
//	// ... other work ...
//	n, err := fut.Wait(ctx)
//
// # Key Concepts
//
// Executor: the serial queue. Internally a FIFO backlog plus a single-flight
// drain loop that is started lazily on submission and exits when the backlog
// empties. At most one drain loop is ever active per executor, which is the
// sole serialization mechanism: no two work items ever execute concurrently,
// and item N fully completes (including any of its own suspensions) before
// item N+1 begins.
//
// Future: the one-shot result slot each typed submission is paired with. It is
// completed exactly once, with either the work's value or its error delivered
// verbatim. A caller that abandons a Future still causes its item to execute.
//
// Work failures are ordinary: an item's error goes only to its own caller and
// never affects other queued items or the loop itself. A panicking item is
// recovered, reported to the configured PanicHandler, and surfaced to its
// caller as a *PanicError.
//
// # Lifecycle
//
// An executor is created by New and remains reusable indefinitely, cycling
// between Idle and Draining. There is intentionally no Shutdown, Close or
// cancellation of queued items: the executor introduces no errors of its own,
// and dropping the last reference while Idle lets the garbage collector
// reclaim it.
//
// # Observability
//
// The executor accepts a pluggable Logger, Metrics sink and PanicHandler via
// options, and exposes a Stats snapshot. The observability/prometheus
// subpackage adapts both to Prometheus collectors.
package serialexecutor
