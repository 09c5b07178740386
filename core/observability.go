package core

import "time"

// ExecutorStats represents runtime observability state for an executor.
type ExecutorStats struct {
	Name       string
	Pending    int
	Draining   bool
	Submitted  int64
	Executed   int64
	Failed     int64
	Panicked   int64
	LastTaskAt time.Time
}
