package core

import (
	"context"
	"fmt"
)

// Task is the unit of work (Closure). It is the type-erased form a work item
// takes once it is stored in the backlog; typed submissions wrap themselves
// into a Task that closes over their own result slot.
type Task func(ctx context.Context)

// Work is a zero-argument asynchronous computation producing a value of type T
// or failing with an error. The error (or value) is delivered verbatim to the
// caller that submitted it.
type Work[T any] func(ctx context.Context) (T, error)

// =============================================================================
// PanicError
// =============================================================================

// PanicError is delivered to a caller whose work item panicked instead of
// returning an error. The drain loop itself is unaffected.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("serialexecutor: panic in work item: %v", e.Value)
}

// =============================================================================
// Context Helper
// =============================================================================
type executorKeyType struct{}

var executorKey executorKeyType

// ExecutorFromContext returns the Executor draining the current task, or nil
// when ctx does not originate from a drain loop.
func ExecutorFromContext(ctx context.Context) *Executor {
	if v := ctx.Value(executorKey); v != nil {
		return v.(*Executor)
	}
	return nil
}
