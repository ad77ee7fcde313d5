// Package handlers contains the http and grpc surfaces of proxyconfig.
package handlers

import (
	"net/http"
	"time"

	"proxyconfig/domain"
	"proxyconfig/helpers"
	"proxyconfig/interfaces"
	"proxyconfig/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// ServerInterface lists the operations of api/proxy-config.openapi.yaml.
type ServerInterface interface {
	// (GET /api)
	GetConfig(ectx echo.Context) error
	// (GET /api/by_instance_type/{instance_type})
	GetConfigByInstanceType(ectx echo.Context, instanceType string) error
	// (GET /health)
	Health(ectx echo.Context) error
	// (GET /ready)
	Ready(ectx echo.Context) error
}

// RegisterHandlers adds the routes of ServerInterface to e.
func RegisterHandlers(e *echo.Echo, si ServerInterface) {
	e.GET("/api", si.GetConfig)
	e.GET("/api/by_instance_type/:instance_type", func(ectx echo.Context) error {
		return si.GetConfigByInstanceType(ectx, ectx.Param("instance_type"))
	})
	e.GET("/health", si.Health)
	e.GET("/ready", si.Ready)
}

// HTTPServer implements ServerInterface on top of the snapshot cache and the assembler.
type HTTPServer struct {
	cache     interfaces.SnapshotCache
	assembler *service.Assembler
	logger    log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil dependencies.
func NewHTTPServer(cache interfaces.SnapshotCache, assembler *service.Assembler, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer")
	return &HTTPServer{
		cache:     helpers.NilPanic(cache, "handlers.http.go: cache is required"),
		assembler: helpers.NilPanic(assembler, "handlers.http.go: assembler is required"),
		logger:    logger,
	}
}

// GetConfig (GET /api) waits for the registry and returns the default template with aleph-api and
// aleph-vm server lists. Returns 503/504 when the registry is still missing after the readiness gate.
func (h *HTTPServer) GetConfig(ectx echo.Context) error {
	reg, err := h.cache.AwaitRegistry(ectx.Request().Context())
	if err != nil {
		return err
	}
	doc, err := h.assembler.BuildDefault(reg)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, doc)
}

// GetConfigByInstanceType (GET /api/by_instance_type/{instance_type}) waits for the registry and the
// system info and returns the instance type template with one server list per non-empty tier.
func (h *HTTPServer) GetConfigByInstanceType(ectx echo.Context, instanceType string) error {
	it, ok := domain.ParseInstanceType(instanceType)
	if !ok {
		return service.NewBadParameterError("unknown instance type "+instanceType, nil)
	}
	ctx := ectx.Request().Context()
	reg, err := h.cache.AwaitRegistry(ctx)
	if err != nil {
		return err
	}
	records, err := h.cache.AwaitSystemInfo(ctx)
	if err != nil {
		return err
	}
	doc, err := h.assembler.BuildForInstanceType(it, reg, records)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, doc)
}

// StatusResponse is the body of GET /health.
type StatusResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the body of GET /ready.
type ReadyResponse struct {
	Status              string     `json:"status"`
	RegistryUpdatedAt   time.Time  `json:"registry_updated_at"`
	SystemInfoUpdatedAt *time.Time `json:"system_info_updated_at,omitempty"`
	Nodes               int        `json:"nodes"`
	ResourceNodes       int        `json:"resource_nodes"`
	EnrichedNodes       *int       `json:"enriched_nodes,omitempty"`
}

// Health (GET /health) always answers 200.
func (h *HTTPServer) Health(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Ready (GET /ready) answers 200 once a registry is cached, 503 cache_empty before. It never waits.
func (h *HTTPServer) Ready(ectx echo.Context) error {
	reg, regAt, ok := h.cache.Registry()
	if !ok {
		return service.NewCacheEmptyError("registry is not cached yet", nil)
	}
	resp := ReadyResponse{
		Status:            "ready",
		RegistryUpdatedAt: regAt,
		Nodes:             len(reg.Nodes),
		ResourceNodes:     len(reg.ResourceNodes),
	}
	if records, at, ok := h.cache.SystemInfo(); ok {
		resp.SystemInfoUpdatedAt = &at
		resp.EnrichedNodes = helpers.Ptr(len(records))
	}
	return ectx.JSON(http.StatusOK, resp)
}
