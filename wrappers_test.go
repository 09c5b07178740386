package serialexecutor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	serialexecutor "github.com/hwada/go-serial-executor"
)

// TestFacade_ReExports verifies the root package wrappers reach core
// Given: An executor built through the facade
// When: Typed submission, Post, WaitIdle and Stats are used via the facade
// Then: Behavior matches the core package
func TestFacade_ReExports(t *testing.T) {
	// Arrange
	exec := serialexecutor.New(
		serialexecutor.WithName("facade"),
		serialexecutor.WithLogger(serialexecutor.NewNoOpLogger()),
	)

	// Act - typed submission
	got, err := serialexecutor.Submit(exec, func(ctx context.Context) (int, error) {
		return 99, nil
	})
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	// Act - fire-and-forget with context helper
	done := make(chan struct{})
	exec.Post(func(ctx context.Context) {
		if serialexecutor.ExecutorFromContext(ctx) != exec {
			t.Error("ExecutorFromContext did not return the facade executor")
		}
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task timed out")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := exec.WaitIdle(ctx); err != nil {
		t.Fatalf("WaitIdle error = %v", err)
	}

	// Assert
	if got != 99 {
		t.Errorf("Submit result = %d, want 99", got)
	}
	stats := exec.Stats()
	if stats.Name != "facade" || stats.Submitted != 2 {
		t.Errorf("stats = %+v, want Name=facade Submitted=2", stats)
	}
}

// TestFacade_PanicErrorAlias verifies the PanicError alias round-trips
func TestFacade_PanicErrorAlias(t *testing.T) {
	exec := serialexecutor.New(serialexecutor.WithPanicHandler(quietHandler{}))

	_, err := serialexecutor.Submit(exec, func(ctx context.Context) (struct{}, error) {
		panic("alias")
	})

	var panicErr *serialexecutor.PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("error = %v, want *PanicError", err)
	}
	if panicErr.Value != "alias" {
		t.Errorf("panic value = %v, want alias", panicErr.Value)
	}
}

type quietHandler struct{}

func (quietHandler) HandlePanic(ctx context.Context, executorName string, panicInfo any, stackTrace []byte) {
}
