package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/hwada/go-serial-executor/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExecutorSnapshotProvider provides current executor stats snapshots.
type ExecutorSnapshotProvider interface {
	Stats() core.ExecutorStats
}

// SnapshotPoller periodically exports executor Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	executorsMu sync.RWMutex
	executors   map[string]ExecutorSnapshotProvider

	executorPending   *prom.GaugeVec
	executorDraining  *prom.GaugeVec
	executorSubmitted *prom.GaugeVec
	executorExecuted  *prom.GaugeVec
	executorFailed    *prom.GaugeVec
	executorPanicked  *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	executorPending := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "serialexecutor",
		Name:      "executor_pending",
		Help:      "Number of pending backlog entries per executor.",
	}, []string{"executor"})
	executorDraining := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "serialexecutor",
		Name:      "executor_draining",
		Help:      "Drain loop state (1=draining, 0=idle).",
	}, []string{"executor"})
	executorSubmitted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "serialexecutor",
		Name:      "executor_submitted_total",
		Help:      "Executor submitted work item count snapshot.",
	}, []string{"executor"})
	executorExecuted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "serialexecutor",
		Name:      "executor_executed_total",
		Help:      "Executor executed work item count snapshot.",
	}, []string{"executor"})
	executorFailed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "serialexecutor",
		Name:      "executor_failed_total",
		Help:      "Executor failed work item count snapshot.",
	}, []string{"executor"})
	executorPanicked := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "serialexecutor",
		Name:      "executor_panicked_total",
		Help:      "Executor panicked work item count snapshot.",
	}, []string{"executor"})

	var err error
	if executorPending, err = registerCollector(reg, executorPending); err != nil {
		return nil, err
	}
	if executorDraining, err = registerCollector(reg, executorDraining); err != nil {
		return nil, err
	}
	if executorSubmitted, err = registerCollector(reg, executorSubmitted); err != nil {
		return nil, err
	}
	if executorExecuted, err = registerCollector(reg, executorExecuted); err != nil {
		return nil, err
	}
	if executorFailed, err = registerCollector(reg, executorFailed); err != nil {
		return nil, err
	}
	if executorPanicked, err = registerCollector(reg, executorPanicked); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:          interval,
		executors:         make(map[string]ExecutorSnapshotProvider),
		executorPending:   executorPending,
		executorDraining:  executorDraining,
		executorSubmitted: executorSubmitted,
		executorExecuted:  executorExecuted,
		executorFailed:    executorFailed,
		executorPanicked:  executorPanicked,
	}, nil
}

// AddExecutor adds or replaces an executor snapshot provider by name.
func (p *SnapshotPoller) AddExecutor(name string, provider ExecutorSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "executor")
	p.executorsMu.Lock()
	p.executors[name] = provider
	p.executorsMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.executorsMu.RLock()
	for name, provider := range p.executors {
		stats := provider.Stats()
		p.executorPending.WithLabelValues(name).Set(float64(stats.Pending))
		if stats.Draining {
			p.executorDraining.WithLabelValues(name).Set(1)
		} else {
			p.executorDraining.WithLabelValues(name).Set(0)
		}
		p.executorSubmitted.WithLabelValues(name).Set(float64(stats.Submitted))
		p.executorExecuted.WithLabelValues(name).Set(float64(stats.Executed))
		p.executorFailed.WithLabelValues(name).Set(float64(stats.Failed))
		p.executorPanicked.WithLabelValues(name).Set(float64(stats.Panicked))
	}
	p.executorsMu.RUnlock()
}
