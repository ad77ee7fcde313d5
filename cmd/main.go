package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proxyconfig/adapters"
	"proxyconfig/api"
	"proxyconfig/handlers"
	"proxyconfig/interfaces"
	"proxyconfig/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting proxyconfig service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, levelOption(config.LogLevel))
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"templates_dir", config.TemplatesDir,
		"trusted_hosts", fmt.Sprint(config.TrustedHosts),
		"refresh_interval", config.RefreshInterval,
	)

	metrics := service.NewMetrics(prometheus.DefaultRegisterer)
	clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })

	var grpcHealth *handlers.GRPCHealthServer
	var cacheOpts []service.CacheOption
	if config.GRPCPort != 0 {
		grpcHealth = handlers.NewGRPCHealthServer(logger)
		cacheOpts = append(cacheOpts, service.WithRegistryObserver(grpcHealth.ObserveRegistry))
	}

	var cache interfaces.SnapshotCache
	{
		cache = service.NewSnapshotCache(service.DefaultGateConfig(), clock, logger, cacheOpts...)
	}

	// Create refresh loops
	var refresher *service.Refresher
	{
		client := &http.Client{Timeout: config.UpstreamTimeout}
		registry := adapters.RegistryHTTP(config.TrustedHosts, adapters.RegistryPath, client, config.UpstreamTimeout, logger)
		sysinfo := adapters.SystemInfoHTTP(client, config.UpstreamTimeout)
		collector := service.NewSystemInfoCollector(sysinfo, config.EnrichConcurrency, metrics, logger)
		refresher = service.NewRefresher(cache, registry, collector, config.RefreshInterval, clock, metrics, logger)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		doc, err := api.LoadSpec()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI spec", "err", err)
			os.Exit(1)
		}
		assembler := service.NewAssembler(adapters.TemplatesYAML(config.TemplatesDir), config.TierPolicies, metrics, logger)
		httpServer := handlers.NewHTTPServer(cache, assembler, logger)
		e, err = handlers.NewEcho(httpServer, doc, prometheus.DefaultGatherer, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create HTTP server", "err", err)
			os.Exit(1)
		}
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	refresher.Start(context.Background())

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	if grpcHealth != nil {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen for gRPC", "err", err)
			os.Exit(1)
		}
		go func() {
			if err := grpcHealth.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown: refresh loops first, each stage with its own grace period
	if err := stopWithin(shutdownGrace, refresher.Stop); err != nil {
		level.Error(logger).Log("msg", "Refresh loops did not stop in time", "err", err)
	}
	if err := stopWithin(shutdownGrace, e.Shutdown); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if grpcHealth != nil {
		_ = stopWithin(shutdownGrace, func(ctx context.Context) error {
			grpcHealth.Stop(ctx)
			return nil
		})
	}

	level.Info(logger).Log("msg", "Server stopped")
}

const shutdownGrace = 10 * time.Second

// stopWithin runs stop with a fresh context bounded by grace.
func stopWithin(grace time.Duration, stop func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return stop(ctx)
}

// levelOption maps a validated LOG_LEVEL to a go-kit level filter.
func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
