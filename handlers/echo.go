package handlers

import (
	"proxyconfig/service"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// NewEcho assembles the HTTP surface: error handler, request id, access log, OpenAPI validation,
// the ServerInterface routes and /metrics.
func NewEcho(si ServerInterface, doc *openapi3.T, gatherer prometheus.Gatherer, logger log.Logger) (*echo.Echo, error) {
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)
	e.Use(RequestID(), RequestLogger(logger), validator)
	RegisterHandlers(e, si)
	RegisterMetrics(e, gatherer)
	return e, nil
}
