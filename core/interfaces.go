package core

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling work item panics
// =============================================================================

// PanicHandler is called when a work item panics during execution.
// This allows custom panic handling, logging, and recovery strategies.
//
// Implementations should be thread-safe; a process may run many executors.
type PanicHandler interface {
	// HandlePanic is called when a work item panics.
	//
	// Parameters:
	// - ctx: The context of the panicked work item
	// - executorName: The name of the executor whose drain loop caught the panic
	// - panicInfo: The panic value recovered from the work item
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(ctx context.Context, executorName string, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(ctx context.Context, executorName string, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Executor %s] Panic: %v\nStack trace:\n%s",
		executorName, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast; they run inside the drain loop and
// directly extend every work item's wall time.
type Metrics interface {
	// RecordTaskDuration records how long a work item took to execute.
	RecordTaskDuration(executorName string, duration time.Duration)

	// RecordTaskFailure records that a work item returned an error.
	RecordTaskFailure(executorName string)

	// RecordTaskPanic records that a work item panicked during execution.
	RecordTaskPanic(executorName string, panicInfo any)

	// RecordQueueDepth records the current backlog depth.
	RecordQueueDepth(executorName string, depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(executorName string, duration time.Duration) {
}

// RecordTaskFailure is a no-op.
func (m *NilMetrics) RecordTaskFailure(executorName string) {
}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(executorName string, panicInfo any) {
}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(executorName string, depth int) {
}

// =============================================================================
// Option: Executor configuration
// =============================================================================

// Option configures an Executor at construction time. The zero-option New()
// produces an executor with a generated name, no-op logging and no metrics.
type Option func(*Executor)

// WithName sets the executor name used in logs and metrics labels.
func WithName(name string) Option {
	return func(e *Executor) {
		if name != "" {
			e.name = name
		}
	}
}

// WithLogger sets the logger. Defaults to NoOpLogger.
func WithLogger(logger Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink. Defaults to NilMetrics.
func WithMetrics(metrics Metrics) Option {
	return func(e *Executor) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

// WithPanicHandler sets the panic handler. Defaults to DefaultPanicHandler.
func WithPanicHandler(handler PanicHandler) Option {
	return func(e *Executor) {
		if handler != nil {
			e.panicHandler = handler
		}
	}
}
