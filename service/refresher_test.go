package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"proxyconfig/domain"
	"proxyconfig/helpers"
	"proxyconfig/interfaces"
	"proxyconfig/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refresherFixture struct {
	cache     interfaces.SnapshotCache
	fetcher   *mock.RegistryFetcherMock
	sysinfo   *mock.SystemInfoFetcherMock
	metrics   *Metrics
	refresher *Refresher
}

func newRefresherFixture(interval time.Duration) *refresherFixture {
	f := &refresherFixture{
		cache:   newTestCache(GateConfig{Attempts: 50, Interval: 5 * time.Millisecond, Deadline: time.Second}),
		fetcher: &mock.RegistryFetcherMock{},
		sysinfo: &mock.SystemInfoFetcherMock{
			FetchSystemInfoFunc: func(ctx context.Context, baseURL string, endpointURL string) (domain.SystemInfo, error) {
				return domain.SystemInfo{URL: endpointURL, CPUCount: 8}, nil
			},
		},
		metrics: newTestMetrics(),
	}
	logger := log.NewNopLogger()
	collector := NewSystemInfoCollector(f.sysinfo, 2, f.metrics, logger)
	f.refresher = NewRefresher(f.cache, f.fetcher, collector, interval, NewTimeProvider(helpers.TestNow), f.metrics, logger)
	return f
}

func TestNewRefresher_Panics(t *testing.T) {
	f := newRefresherFixture(time.Hour)
	collector := NewSystemInfoCollector(f.sysinfo, 1, f.metrics, log.NewNopLogger())
	clock := NewTimeProvider(helpers.TestNow)
	logger := log.NewNopLogger()

	t.Run("cache_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: cache is required", func() {
			NewRefresher(nil, f.fetcher, collector, time.Second, clock, f.metrics, logger)
		})
	})
	t.Run("fetcher_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: fetcher is required", func() {
			NewRefresher(f.cache, nil, collector, time.Second, clock, f.metrics, logger)
		})
	})
	t.Run("collector_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.refresher.go: collector is required", func() {
			NewRefresher(f.cache, f.fetcher, nil, time.Second, clock, f.metrics, logger)
		})
	})
	t.Run("zero_interval", func(t *testing.T) {
		assert.Panics(t, func() {
			NewRefresher(f.cache, f.fetcher, collector, 0, clock, f.metrics, logger)
		})
	})
}

func TestRefresher_RefreshRegistry(t *testing.T) {
	t.Run("success_publishes", func(t *testing.T) {
		f := newRefresherFixture(time.Hour)
		f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
			return testRegistry(2), nil
		}

		require.NoError(t, f.refresher.RefreshRegistry(context.Background()))

		reg, at, ok := f.cache.Registry()
		require.True(t, ok)
		assert.Len(t, reg.Nodes, 2)
		assert.Equal(t, helpers.TestNow(), at)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.refreshTotal.WithLabelValues(KindRegistry, "success")))
	})

	t.Run("failure_keeps_last_known_good", func(t *testing.T) {
		f := newRefresherFixture(time.Hour)
		f.cache.SetRegistry(testRegistry(3))
		upstreamErr := NewUpstreamUnavailableError("all trusted hosts failed", errors.New("503"))
		f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
			return domain.Registry{}, upstreamErr
		}

		err := f.refresher.RefreshRegistry(context.Background())
		require.Error(t, err)
		assert.True(t, IsUpstreamUnavailableError(err))

		reg, _, ok := f.cache.Registry()
		require.True(t, ok)
		assert.Len(t, reg.Nodes, 3)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.refreshTotal.WithLabelValues(KindRegistry, "failure")))
	})

	t.Run("failure_on_empty_cache_stays_empty", func(t *testing.T) {
		f := newRefresherFixture(time.Hour)
		f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
			return domain.Registry{}, errors.New("boom")
		}

		require.Error(t, f.refresher.RefreshRegistry(context.Background()))
		_, _, ok := f.cache.Registry()
		assert.False(t, ok)
	})
}

func TestRefresher_RefreshSystemInfo(t *testing.T) {
	t.Run("no_registry_skips", func(t *testing.T) {
		f := newRefresherFixture(time.Hour)

		err := f.refresher.RefreshSystemInfo(context.Background())
		require.Error(t, err)
		assert.True(t, IsCacheEmptyError(err))
		assert.Empty(t, f.sysinfo.FetchSystemInfoCalls())
		_, _, ok := f.cache.SystemInfo()
		assert.False(t, ok)
	})

	t.Run("publishes_partial_collection", func(t *testing.T) {
		f := newRefresherFixture(time.Hour)
		f.cache.SetRegistry(domain.Registry{ResourceNodes: []domain.ResourceNode{
			{Address: "ok.example.org"},
			{Address: "down.example.org"},
		}})
		f.sysinfo.FetchSystemInfoFunc = func(ctx context.Context, baseURL string, endpointURL string) (domain.SystemInfo, error) {
			if baseURL == "https://down.example.org" {
				return domain.SystemInfo{}, errors.New("timeout")
			}
			return domain.SystemInfo{URL: endpointURL, CPUCount: 2}, nil
		}

		require.NoError(t, f.refresher.RefreshSystemInfo(context.Background()))

		records, _, ok := f.cache.SystemInfo()
		require.True(t, ok)
		assert.Equal(t, []domain.SystemInfo{{URL: "https://ok.example.org/vm/", CPUCount: 2}}, records)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.enrichedNodes))
	})

	t.Run("cancelled_keeps_previous_collection", func(t *testing.T) {
		f := newRefresherFixture(time.Hour)
		f.cache.SetRegistry(domain.Registry{ResourceNodes: []domain.ResourceNode{{Address: "slow.example.org"}}})
		previous := []domain.SystemInfo{{URL: "https://old.example.org/vm/"}}
		f.cache.SetSystemInfo(previous)
		f.sysinfo.FetchSystemInfoFunc = func(ctx context.Context, baseURL string, endpointURL string) (domain.SystemInfo, error) {
			<-ctx.Done()
			return domain.SystemInfo{}, ctx.Err()
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.Error(t, f.refresher.RefreshSystemInfo(ctx))
		records, _, _ := f.cache.SystemInfo()
		assert.Equal(t, previous, records)
	})
}

func TestRefresher_StartStop(t *testing.T) {
	f := newRefresherFixture(10 * time.Millisecond)
	f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
		return domain.Registry{ResourceNodes: []domain.ResourceNode{{Address: "crn.example.org"}}}, nil
	}

	f.refresher.Start(context.Background())
	f.refresher.Start(context.Background())

	records, err := f.cache.AwaitSystemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.SystemInfo{{URL: "https://crn.example.org/vm/", CPUCount: 8}}, records)

	require.Eventually(t, func() bool {
		return len(f.fetcher.FetchRegistryCalls()) >= 3
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.refresher.Stop(ctx))

	calls := len(f.fetcher.FetchRegistryCalls())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, len(f.fetcher.FetchRegistryCalls()), "no cycles after Stop")

	require.NoError(t, f.refresher.Stop(ctx), "second Stop is a no-op")
}

func TestRefresher_StopsWithParentContext(t *testing.T) {
	f := newRefresherFixture(10 * time.Millisecond)
	f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
		return testRegistry(1), nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.refresher.Start(ctx)
	_, err := f.cache.AwaitRegistry(context.Background())
	require.NoError(t, err)

	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	require.NoError(t, f.refresher.Stop(stopCtx))
}

func TestRefresher_StopTimesOutOnStuckCycle(t *testing.T) {
	f := newRefresherFixture(time.Hour)
	release := make(chan struct{})
	defer close(release)
	f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
		<-release
		return domain.Registry{}, errors.New("released")
	}
	f.refresher.Start(context.Background())
	require.Eventually(t, func() bool {
		return len(f.fetcher.FetchRegistryCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := f.refresher.Stop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRefresher_LoopSurvivesFailedCycles(t *testing.T) {
	f := newRefresherFixture(5 * time.Millisecond)
	f.fetcher.FetchRegistryFunc = func(ctx context.Context) (domain.Registry, error) {
		return domain.Registry{}, errors.New("upstream down")
	}

	f.refresher.Start(context.Background())
	require.Eventually(t, func() bool {
		return len(f.fetcher.FetchRegistryCalls()) >= 3
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.refresher.Stop(ctx))
	assert.GreaterOrEqual(t, testutil.ToFloat64(f.metrics.refreshTotal.WithLabelValues(KindRegistry, "failure")), 3.0)
	_, _, ok := f.cache.Registry()
	assert.False(t, ok)
}
