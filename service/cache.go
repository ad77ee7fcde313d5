package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"proxyconfig/domain"
	"proxyconfig/helpers"
	"proxyconfig/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// GateConfig bounds how long AwaitRegistry and AwaitSystemInfo wait for an empty slot.
// Whichever of the retry budget (Attempts x Interval) or the hard Deadline runs out first decides the error.
type GateConfig struct {
	Attempts int
	Interval time.Duration
	Deadline time.Duration
}

// DefaultGateConfig is 10 attempts 2s apart under a 60s deadline.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Attempts: 10,
		Interval: 2 * time.Second,
		Deadline: 60 * time.Second,
	}
}

// slot is a single-assignment cell: a writer swaps in a fully built value, readers copy it out.
type slot[T any] struct {
	mu        sync.RWMutex
	value     T
	updatedAt time.Time
	populated bool
}

func (s *slot[T]) set(v T, at time.Time) {
	s.mu.Lock()
	s.value, s.updatedAt, s.populated = v, at, true
	s.mu.Unlock()
}

func (s *slot[T]) get() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.updatedAt, s.populated
}

// snapshotCache implements interfaces.SnapshotCache with two independent slots.
type snapshotCache struct {
	registry   slot[domain.Registry]
	systemInfo slot[[]domain.SystemInfo]

	gate      GateConfig
	clock     interfaces.TimeProvider
	logger    log.Logger
	observers []func(domain.Registry)
}

// CacheOption configures a snapshotCache.
type CacheOption func(*snapshotCache)

// WithRegistryObserver registers fn to be called, outside the slot lock, after every registry publish.
func WithRegistryObserver(fn func(domain.Registry)) CacheOption {
	return func(c *snapshotCache) {
		c.observers = append(c.observers, helpers.NilPanic(fn, "service.cache.go: observer is required"))
	}
}

// NewSnapshotCache creates an empty cache. Panics on nil clock or logger or a non-positive gate.
func NewSnapshotCache(gate GateConfig, clock interfaces.TimeProvider, logger log.Logger, opts ...CacheOption) interfaces.SnapshotCache {
	if gate.Attempts <= 0 || gate.Interval <= 0 || gate.Deadline <= 0 {
		panic("service.cache.go: gate attempts, interval and deadline must be positive")
	}
	c := &snapshotCache{
		gate:   gate,
		clock:  helpers.NilPanic(clock, "service.cache.go: clock is required"),
		logger: log.With(helpers.NilPanic(logger, "service.cache.go: logger is required"), "component", "snapshot_cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *snapshotCache) SetRegistry(reg domain.Registry) {
	c.registry.set(reg, c.clock.Now())
	for _, fn := range c.observers {
		fn(reg)
	}
}

func (c *snapshotCache) Registry() (domain.Registry, time.Time, bool) {
	return c.registry.get()
}

func (c *snapshotCache) SetSystemInfo(records []domain.SystemInfo) {
	c.systemInfo.set(records, c.clock.Now())
}

func (c *snapshotCache) SystemInfo() ([]domain.SystemInfo, time.Time, bool) {
	return c.systemInfo.get()
}

func (c *snapshotCache) AwaitRegistry(ctx context.Context) (domain.Registry, error) {
	return await(ctx, &c.registry, c.gate, c.logger, "registry")
}

func (c *snapshotCache) AwaitSystemInfo(ctx context.Context) ([]domain.SystemInfo, error) {
	return await(ctx, &c.systemInfo, c.gate, c.logger, "system_info")
}

// await returns the slot value as soon as it is populated. An empty slot is re-checked gate.Attempts
// times, gate.Interval apart, all under gate.Deadline (and ctx).
func await[T any](ctx context.Context, s *slot[T], gate GateConfig, logger log.Logger, name string) (T, error) {
	if v, _, ok := s.get(); ok {
		return v, nil
	}
	var zero T

	ctx, cancel := context.WithTimeout(ctx, gate.Deadline)
	defer cancel()

	timer := time.NewTimer(gate.Interval)
	defer timer.Stop()
	for attempt := 1; attempt <= gate.Attempts; attempt++ {
		level.Warn(logger).Log("msg", "slot is empty, waiting", "slot", name, "attempt", fmt.Sprintf("%d/%d", attempt, gate.Attempts))
		select {
		case <-ctx.Done():
			return zero, NewCacheTimeoutError(name+" was not populated before the deadline", ctx.Err())
		case <-timer.C:
		}
		if v, _, ok := s.get(); ok {
			return v, nil
		}
		timer.Reset(gate.Interval)
	}
	return zero, NewCacheEmptyError(fmt.Sprintf("%s is still empty after %d attempts", name, gate.Attempts), nil)
}
