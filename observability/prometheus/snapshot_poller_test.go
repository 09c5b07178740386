package prometheus

import (
	"context"
	"testing"
	"time"

	"github.com/hwada/go-serial-executor/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type executorStub struct {
	stats core.ExecutorStats
}

func (s executorStub) Stats() core.ExecutorStats { return s.stats }

func TestSnapshotPoller_CollectsExecutorStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddExecutor("exec-a", executorStub{stats: core.ExecutorStats{
		Pending:   3,
		Draining:  true,
		Submitted: 12,
		Executed:  9,
		Failed:    2,
		Panicked:  1,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		pending := testutil.ToFloat64(poller.executorPending.WithLabelValues("exec-a"))
		submitted := testutil.ToFloat64(poller.executorSubmitted.WithLabelValues("exec-a"))
		return pending == 3 && submitted == 12
	})

	if got := testutil.ToFloat64(poller.executorDraining.WithLabelValues("exec-a")); got != 1 {
		t.Fatalf("draining gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.executorFailed.WithLabelValues("exec-a")); got != 2 {
		t.Fatalf("failed gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(poller.executorPanicked.WithLabelValues("exec-a")); got != 1 {
		t.Fatalf("panicked gauge = %v, want 1", got)
	}
}

func TestSnapshotPoller_CollectsLiveExecutor(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	exec := core.New(core.WithName("exec-live"))
	poller.AddExecutor(exec.Name(), exec)

	done := make(chan struct{})
	exec.Post(func(ctx context.Context) {
		close(done)
	})
	<-done

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		executed := testutil.ToFloat64(poller.executorExecuted.WithLabelValues("exec-live"))
		return executed == 1
	})
}

func TestSnapshotPoller_StartStop_Idempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}

func assertEventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
