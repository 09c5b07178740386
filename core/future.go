package core

import "context"

// Future is the one-shot result slot paired with a submitted work item.
// Exactly one Pending Entry owns it, and the drain loop completes it exactly
// once when that entry finishes. The submitting caller waits on it.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete resolves the future. The drain loop is the sole caller; calling it
// twice is a defect and panics on the double close.
func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done returns a channel closed once the work item has finished, successfully
// or not.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the work item finishes and returns its outcome verbatim.
//
// A canceled ctx only abandons the wait: the work item still executes in its
// queue position and the future is still completed. Wait can be called again
// afterwards to pick up the result.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
