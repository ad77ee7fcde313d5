package handlers

import (
	"context"
	"net"

	"proxyconfig/domain"
	"proxyconfig/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCHealthServer serves grpc.health.v1.Health. The overall status ("") is NOT_SERVING until
// the first registry is published, SERVING afterwards.
type GRPCHealthServer struct {
	server *grpc.Server
	health *health.Server
	logger log.Logger
}

// NewGRPCHealthServer creates the server in NOT_SERVING state. Panics on nil logger.
func NewGRPCHealthServer(logger log.Logger) *GRPCHealthServer {
	g := &GRPCHealthServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		logger: log.WithPrefix(helpers.NilPanic(logger, "handlers.grpc_health.go: logger is required"), "component", "GRPCHealthServer"),
	}
	g.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpc_health_v1.RegisterHealthServer(g.server, g.health)
	return g
}

// ObserveRegistry marks the service SERVING. Registered as a snapshot cache observer in cmd/main.
func (g *GRPCHealthServer) ObserveRegistry(_ domain.Registry) {
	g.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
}

// Serve blocks serving on lis until Stop.
func (g *GRPCHealthServer) Serve(lis net.Listener) error {
	level.Info(g.logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr().String())
	return g.server.Serve(lis)
}

// Stop marks every service NOT_SERVING and stops gracefully, forcing the stop when ctx expires first.
func (g *GRPCHealthServer) Stop(ctx context.Context) {
	g.health.Shutdown()
	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		g.server.Stop()
		<-done
	}
}
