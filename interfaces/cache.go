package interfaces

import (
	"context"
	"time"

	"proxyconfig/domain"
)

// SnapshotCache holds the latest registry and the latest system-info collection in two
// independently refreshed slots. Writers are the refresh loops; readers are HTTP handlers.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . SnapshotCache
type SnapshotCache interface {
	// SetRegistry replaces the registry slot with reg in a single assignment.
	SetRegistry(reg domain.Registry)

	// Registry returns the cached registry, the time it was stored and whether the slot is populated.
	Registry() (domain.Registry, time.Time, bool)

	// SetSystemInfo replaces the system-info slot. The slice must not be modified afterwards.
	SetSystemInfo(records []domain.SystemInfo)

	// SystemInfo returns the cached system-info collection, the time it was stored and whether the slot is populated.
	// Callers must not modify the returned slice.
	SystemInfo() ([]domain.SystemInfo, time.Time, bool)

	// AwaitRegistry returns the cached registry, waiting a bounded time for the first publish.
	// Returns:
	// 1) (registry, nil) as soon as the slot is populated;
	// 2) cache_empty when the retry budget is exhausted;
	// 3) cache_timeout when the hard deadline (or ctx) expires first.
	AwaitRegistry(ctx context.Context) (domain.Registry, error)

	// AwaitSystemInfo is AwaitRegistry for the system-info slot.
	AwaitSystemInfo(ctx context.Context) ([]domain.SystemInfo, error)
}
