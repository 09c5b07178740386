package serialexecutor

import "github.com/hwada/go-serial-executor/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the serialexecutor package for most use cases.

// Task is the type-erased unit of work (Closure)
type Task = core.Task

// Work is a typed asynchronous computation producing a T or failing with an error
type Work[T any] = core.Work[T]

// Executor runs submitted work items one at a time in submission order
type Executor = core.Executor

// Future is the one-shot result slot paired with a submitted work item
type Future[T any] = core.Future[T]

// Option configures an Executor at construction time
type Option = core.Option

// ExecutorStats is a snapshot of an executor's observable state
type ExecutorStats = core.ExecutorStats

// PanicError is delivered to a caller whose work item panicked
type PanicError = core.PanicError

// Logger is the pluggable structured logging interface
type Logger = core.Logger

// Field is a key-value pair for structured logging
type Field = core.Field

// Metrics is the pluggable metrics sink interface
type Metrics = core.Metrics

// PanicHandler is the pluggable panic handler interface
type PanicHandler = core.PanicHandler

// Constructor and option re-exports
var (
	New              = core.New
	WithName         = core.WithName
	WithLogger       = core.WithLogger
	WithMetrics      = core.WithMetrics
	WithPanicHandler = core.WithPanicHandler

	NewDefaultLogger = core.NewDefaultLogger
	NewNoOpLogger    = core.NewNoOpLogger
	F                = core.F

	ExecutorFromContext = core.ExecutorFromContext
)

// Submit appends work to e's backlog and blocks until it has run to
// completion, returning its value or error verbatim.
func Submit[T any](e *Executor, work Work[T]) (T, error) {
	return core.Submit(e, work)
}

// SubmitAsync appends work to e's backlog and returns the future its outcome
// will be delivered through.
func SubmitAsync[T any](e *Executor, work Work[T]) *Future[T] {
	return core.SubmitAsync(e, work)
}
