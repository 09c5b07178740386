package core

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

var executorSeq atomic.Int64

// Executor runs submitted work items to completion one at a time, in strict
// submission order. Submissions may come from any number of goroutines; the
// backlog and the draining flag share one mutex so that appending an entry and
// deciding whether to start a drain loop is atomic as a whole.
//
// The executor has no terminal state. When the backlog empties the drain
// goroutine exits and a later submission lazily starts a new one; the cycle
// repeats indefinitely. There is deliberately no Shutdown or Close: an
// executor that becomes unreachable with an empty backlog is simply collected.
// Items queued on an executor the caller has dropped still execute and still
// have their futures completed.
type Executor struct {
	name         string
	logger       Logger
	metrics      Metrics
	panicHandler PanicHandler

	mu       sync.Mutex
	backlog  *Backlog
	draining bool
	idle     chan struct{} // closed while Idle, replaced on Idle -> Draining

	activeDrains int32 // atomic guard for the single-flight assertion

	submitted  atomic.Int64
	executed   atomic.Int64
	failed     atomic.Int64
	panicked   atomic.Int64
	lastTaskMu sync.Mutex
	lastTaskAt time.Time
}

// New creates an executor with an empty backlog in the Idle state.
func New(opts ...Option) *Executor {
	idle := make(chan struct{})
	close(idle)

	e := &Executor{
		name:         fmt.Sprintf("executor-%d", executorSeq.Add(1)),
		logger:       NewNoOpLogger(),
		metrics:      &NilMetrics{},
		panicHandler: &DefaultPanicHandler{},
		backlog:      NewBacklog(),
		idle:         idle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the executor name used in logs and metrics labels.
func (e *Executor) Name() string {
	return e.name
}

// Post appends task to the backlog. It never blocks; the task runs once every
// earlier entry has run to completion.
func (e *Executor) Post(task Task) {
	e.enqueue(task)
}

// FlushAsync runs fn after every task queued before this call has completed.
func (e *Executor) FlushAsync(fn func()) {
	e.Post(func(context.Context) {
		fn()
	})
}

// WaitIdle blocks until the backlog is empty and the drain loop has stopped,
// or until ctx is done. Tasks posted after WaitIdle returns are not covered.
func (e *Executor) WaitIdle(ctx context.Context) error {
	e.mu.Lock()
	idle := e.idle
	e.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of pending entries in the backlog. The entry
// currently executing is not counted.
func (e *Executor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.backlog.Len()
}

// IsDraining reports whether a drain loop is currently active.
func (e *Executor) IsDraining() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draining
}

// Stats returns a snapshot of the executor's observable state.
func (e *Executor) Stats() ExecutorStats {
	e.mu.Lock()
	pending := e.backlog.Len()
	draining := e.draining
	e.mu.Unlock()

	e.lastTaskMu.Lock()
	lastTaskAt := e.lastTaskAt
	e.lastTaskMu.Unlock()

	return ExecutorStats{
		Name:       e.name,
		Pending:    pending,
		Draining:   draining,
		Submitted:  e.submitted.Load(),
		Executed:   e.executed.Load(),
		Failed:     e.failed.Load(),
		Panicked:   e.panicked.Load(),
		LastTaskAt: lastTaskAt,
	}
}

// enqueue appends task and starts a drain loop if none is active. The check
// and set on the draining flag happen under the same lock as the append, so a
// submission racing a terminating loop either lands before the loop's final
// emptiness check or observes the cleared flag and starts a fresh loop. No
// entry can be stranded.
func (e *Executor) enqueue(task Task) {
	e.mu.Lock()
	e.backlog.Push(task)
	depth := e.backlog.Len()
	start := !e.draining
	if start {
		e.draining = true
		e.idle = make(chan struct{})
	}
	e.mu.Unlock()

	e.submitted.Add(1)
	e.metrics.RecordQueueDepth(e.name, depth)

	if start {
		e.logger.Debug("drain loop starting", F("executor", e.name))
		go e.drain()
	}
}

// drain pops and executes backlog entries in FIFO order until the backlog is
// observed empty, then clears the draining flag and exits. One entry runs to
// full completion, including any suspension it performs, before the next entry
// starts; this loop never advances past a suspended item.
func (e *Executor) drain() {
	// Assertion: strictly one drain loop at a time
	if n := atomic.AddInt32(&e.activeDrains, 1); n > 1 {
		panic(fmt.Sprintf("Executor: concurrent drain loops detected (count=%d)", n))
	}

	ctx := context.WithValue(context.Background(), executorKey, e)

	for {
		e.mu.Lock()
		task, ok := e.backlog.Pop()
		if !ok {
			// Decrement inside the critical section that clears the flag, so
			// the successor loop never observes a stale count.
			atomic.AddInt32(&e.activeDrains, -1)
			e.draining = false
			close(e.idle)
			e.mu.Unlock()
			e.logger.Debug("drain loop stopped", F("executor", e.name))
			return
		}
		e.mu.Unlock()

		e.runTask(ctx, task)
	}
}

// runTask executes a single backlog entry. Panics are contained here so that a
// misbehaving item cannot take down the loop; typed submissions additionally
// convert their own panics into a *PanicError before this safety net is hit.
func (e *Executor) runTask(ctx context.Context, task Task) {
	started := time.Now()

	func() {
		defer func() {
			if r := recover(); r != nil {
				e.recordPanic(ctx, r, debug.Stack())
			}
		}()
		task(ctx)
	}()

	e.executed.Add(1)
	e.metrics.RecordTaskDuration(e.name, time.Since(started))

	e.lastTaskMu.Lock()
	e.lastTaskAt = time.Now()
	e.lastTaskMu.Unlock()
}

func (e *Executor) recordPanic(ctx context.Context, panicInfo any, stack []byte) {
	e.panicked.Add(1)
	e.metrics.RecordTaskPanic(e.name, panicInfo)
	e.panicHandler.HandlePanic(ctx, e.name, panicInfo, stack)
}

func (e *Executor) recordFailure() {
	e.failed.Add(1)
	e.metrics.RecordTaskFailure(e.name)
}

// =============================================================================
// Typed submission
// =============================================================================

// SubmitAsync appends work to e's backlog and returns the future its outcome
// will be delivered through. The work's value or error reaches the returned
// future verbatim; a panic inside work is recovered and delivered as a
// *PanicError so the future is always completed exactly once.
//
// Submissions to the same executor may use different result types freely; the
// backlog only ever sees the type-erased wrapper.
func SubmitAsync[T any](e *Executor, work Work[T]) *Future[T] {
	future := newFuture[T]()

	e.enqueue(func(ctx context.Context) {
		var (
			value T
			err   error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = &PanicError{Value: r, Stack: stack}
					e.recordPanic(ctx, r, stack)
				}
			}()
			value, err = work(ctx)
		}()

		if err != nil {
			e.recordFailure()
		}
		future.complete(value, err)
	})

	return future
}

// Submit appends work to e's backlog and blocks the calling goroutine until
// the item has run to completion, spanning its whole wait in the backlog plus
// its own execution. The result or error is returned exactly as work produced
// it. Callers that submitted earlier always observe completion no later than
// this one.
//
// Calling Submit on e from inside a work item running on e deadlocks, as it
// would on any serial queue: the drain loop would be waiting on itself. Use
// Post or SubmitAsync for follow-up work from inside a task.
func Submit[T any](e *Executor, work Work[T]) (T, error) {
	future := SubmitAsync(e, work)
	<-future.done
	return future.value, future.err
}
