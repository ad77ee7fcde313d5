package service

import (
	"context"
	"sync"
	"time"

	"proxyconfig/helpers"
	"proxyconfig/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Refresher keeps the snapshot cache warm with two independent loops: one downloads the registry,
// the other collects system info for the resource nodes of the cached registry. A failed cycle
// leaves its slot untouched.
type Refresher struct {
	cache     interfaces.SnapshotCache
	fetcher   interfaces.RegistryFetcher
	collector *SystemInfoCollector
	interval  time.Duration
	clock     interfaces.TimeProvider
	metrics   *Metrics
	logger    log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher creates a stopped Refresher. Panics on nil dependencies or a non-positive interval.
//
// Parameters:
//   - cache: slots the loops publish into
//   - fetcher: registry source (adapters.RegistryHTTP)
//   - collector: system info source
//   - interval: pause between two cycles of the same loop
//
// Called from cmd/main.
func NewRefresher(
	cache interfaces.SnapshotCache,
	fetcher interfaces.RegistryFetcher,
	collector *SystemInfoCollector,
	interval time.Duration,
	clock interfaces.TimeProvider,
	metrics *Metrics,
	logger log.Logger,
) *Refresher {
	if interval <= 0 {
		panic("service.refresher.go: interval must be positive")
	}
	return &Refresher{
		cache:     helpers.NilPanic(cache, "service.refresher.go: cache is required"),
		fetcher:   helpers.NilPanic(fetcher, "service.refresher.go: fetcher is required"),
		collector: helpers.NilPanic(collector, "service.refresher.go: collector is required"),
		interval:  interval,
		clock:     helpers.NilPanic(clock, "service.refresher.go: clock is required"),
		metrics:   helpers.NilPanic(metrics, "service.refresher.go: metrics is required"),
		logger:    log.With(helpers.NilPanic(logger, "service.refresher.go: logger is required"), "component", "refresher"),
	}
}

// Start launches both loops. The loops run until ctx is cancelled or Stop is called.
// Calling Start on a running Refresher does nothing.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.loop(ctx, KindRegistry, r.RefreshRegistry)
	}()
	go func() {
		defer wg.Done()
		// The first collection needs a registry; wait for the other loop's first publish.
		if _, err := r.cache.AwaitRegistry(ctx); err != nil {
			level.Warn(r.logger).Log("msg", "registry not available for the first system info cycle", "err", err)
		}
		r.loop(ctx, KindSystemInfo, r.RefreshSystemInfo)
	}()
	go func(done chan struct{}) {
		wg.Wait()
		close(done)
	}(r.done)
	level.Info(r.logger).Log("msg", "refresh loops started", "interval", r.interval)
}

// Stop cancels both loops and waits for them to exit.
// Returns ctx.Err() if the loops are still running when ctx expires, nil otherwise.
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		level.Info(r.logger).Log("msg", "refresh loops stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) loop(ctx context.Context, kind string, cycle func(context.Context) error) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			level.Debug(r.logger).Log("msg", "refresh loop exiting", "kind", kind)
			return
		case <-timer.C:
		}
		// The cycle logs and counts its own failure; the loop just waits for the next tick.
		_ = cycle(ctx)
		timer.Reset(r.interval)
	}
}

// RefreshRegistry runs one registry cycle: download and, on success, publish.
// Returns the fetch error; the cached registry is kept in that case.
func (r *Refresher) RefreshRegistry(ctx context.Context) error {
	level.Debug(r.logger).Log("msg", "obtaining registry")
	reg, err := r.fetcher.FetchRegistry(ctx)
	if err != nil {
		r.metrics.refreshFailed(KindRegistry)
		level.Error(r.logger).Log("msg", "registry refresh failed, keeping last known registry", "err", err)
		return err
	}
	r.cache.SetRegistry(reg)
	r.metrics.refreshSucceeded(KindRegistry, r.clock.Now())
	level.Debug(r.logger).Log("msg", "obtained registry", "nodes", len(reg.Nodes), "resource_nodes", len(reg.ResourceNodes))
	return nil
}

// RefreshSystemInfo runs one system info cycle over the cached registry and publishes the result,
// even when some nodes were skipped.
// Returns cache_empty without doing anything when no registry is cached yet, or ctx.Err() when cancelled mid-cycle.
func (r *Refresher) RefreshSystemInfo(ctx context.Context) error {
	reg, _, ok := r.cache.Registry()
	if !ok {
		r.metrics.refreshSkipped(KindSystemInfo)
		level.Warn(r.logger).Log("msg", "system info refresh skipped, no registry cached")
		return NewCacheEmptyError("registry is not cached yet", nil)
	}
	records, err := r.collector.Collect(ctx, reg)
	if err != nil {
		r.metrics.refreshFailed(KindSystemInfo)
		level.Warn(r.logger).Log("msg", "system info refresh interrupted", "err", err)
		return err
	}
	r.cache.SetSystemInfo(records)
	r.metrics.refreshSucceeded(KindSystemInfo, r.clock.Now())
	r.metrics.nodesEnriched(len(records))
	level.Debug(r.logger).Log("msg", "collected system info", "nodes", len(records), "resource_nodes", len(reg.ResourceNodes))
	return nil
}
