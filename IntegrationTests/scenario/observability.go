package scenario

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	scenarioMetricsExposed = "metrics_exposed"
	scenarioGRPCHealth     = "grpc_health"
)

func init() {
	Register(scenarioMetricsExposed, runMetricsExposed)
	Register(scenarioGRPCHealth, runGRPCHealth)
}

func runMetricsExposed(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := WaitReady(ctx, cfg); err != nil {
		return fmt.Errorf("ready: %w", err)
	}
	status, body, err := Get(ctx, cfg, "/metrics")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &UnexpectedStatusError{Path: "/metrics", Got: status, Want: http.StatusOK}
	}
	for _, name := range []string{"proxyconfig_refresh_total", "proxyconfig_refresh_last_success_timestamp_seconds"} {
		if !strings.Contains(string(body), name) {
			return fmt.Errorf("metrics: %s not exposed", name)
		}
	}
	return nil
}

// runGRPCHealth expects SERVING once the HTTP readiness probe passes.
func runGRPCHealth(ctx context.Context, cfg *Config) error {
	if cfg.GRPCAddr == "" {
		return fmt.Errorf("grpc address is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := WaitReady(ctx, cfg); err != nil {
		return fmt.Errorf("ready: %w", err)
	}

	conn, err := grpc.NewClient(cfg.GRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial grpc: %w", err)
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("health status=%s, want SERVING", resp.GetStatus())
	}
	return nil
}
