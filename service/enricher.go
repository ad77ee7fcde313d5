package service

import (
	"context"

	"proxyconfig/domain"
	"proxyconfig/helpers"
	"proxyconfig/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// SystemInfoCollector reads the capacity of every resource node of a registry with bounded concurrency.
type SystemInfoCollector struct {
	fetcher     interfaces.SystemInfoFetcher
	concurrency int
	metrics     *Metrics
	logger      log.Logger
}

// NewSystemInfoCollector creates a collector running at most concurrency fetches at a time.
// Panics on nil fetcher, metrics or logger, or a non-positive concurrency.
//
// Called from cmd/main; the collector is driven by Refresher.RefreshSystemInfo.
func NewSystemInfoCollector(fetcher interfaces.SystemInfoFetcher, concurrency int, metrics *Metrics, logger log.Logger) *SystemInfoCollector {
	if concurrency <= 0 {
		panic("service.enricher.go: concurrency must be positive")
	}
	return &SystemInfoCollector{
		fetcher:     helpers.NilPanic(fetcher, "service.enricher.go: fetcher is required"),
		concurrency: concurrency,
		metrics:     helpers.NilPanic(metrics, "service.enricher.go: metrics is required"),
		logger:      log.With(helpers.NilPanic(logger, "service.enricher.go: logger is required"), "component", "system_info_collector"),
	}
}

// Collect fetches system info for each resource node with a usable address. A node that fails is
// skipped with a warning and never fails the cycle. Output keeps registry order.
//
// Returns ctx.Err() when ctx is cancelled before every fetch finished; the partial result must not be published then.
func (c *SystemInfoCollector) Collect(ctx context.Context, reg domain.Registry) ([]domain.SystemInfo, error) {
	results := make([]*domain.SystemInfo, len(reg.ResourceNodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, node := range reg.ResourceNodes {
		base, ok := ResourceBaseURL(node.Address)
		if !ok {
			continue
		}
		g.Go(func() error {
			info, err := c.fetcher.FetchSystemInfo(gctx, base, ResourceEndpointURL(base))
			if err != nil {
				c.metrics.nodeSkipped()
				level.Warn(c.logger).Log("msg", "node enrichment skipped", "node", node.Hash, "url", base, "err", err)
				return nil
			}
			results[i] = &info
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]domain.SystemInfo, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records, nil
}
