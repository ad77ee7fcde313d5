package service

import (
	"fmt"
	"strings"

	"proxyconfig/domain"
	"proxyconfig/helpers"
	"proxyconfig/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Assembler injects classified endpoint lists into freshly loaded configuration templates.
// Server lists live at http.services.<service>.loadBalancer.servers.
type Assembler struct {
	loader   interfaces.TemplateLoader
	policies domain.TierPolicies
	metrics  *Metrics
	logger   log.Logger
}

// NewAssembler creates an Assembler classifying with policies. Panics on nil dependencies.
//
// Called from cmd/main; used by handlers.HTTPServer on every config request.
func NewAssembler(loader interfaces.TemplateLoader, policies domain.TierPolicies, metrics *Metrics, logger log.Logger) *Assembler {
	return &Assembler{
		loader:   helpers.NilPanic(loader, "service.assembler.go: loader is required"),
		policies: helpers.NilPanic(policies, "service.assembler.go: policies is required"),
		metrics:  helpers.NilPanic(metrics, "service.assembler.go: metrics is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.assembler.go: logger is required"), "component", "assembler"),
	}
}

// BuildDefault loads the default template and fills aleph-api with the API endpoints and aleph-vm with
// the resource endpoints of reg.
//
// Returns the template errors of the loader, or internal_server_error when the template does not declare both services.
func (a *Assembler) BuildDefault(reg domain.Registry) (map[string]any, error) {
	doc, err := a.loader.LoadTemplate(domain.TemplateDefault)
	if err != nil {
		return nil, err
	}
	services, err := httpSection(doc, "services")
	if err != nil {
		return nil, err
	}
	if err := setServers(services, domain.ServiceAPI, ExtractAPIEndpoints(reg)); err != nil {
		return nil, err
	}
	if err := setServers(services, domain.ServiceVM, ExtractResourceEndpoints(reg)); err != nil {
		return nil, err
	}
	return doc, nil
}

// BuildForInstanceType loads the instance type template and fills aleph-vm-<tier> with the endpoints
// classified into each tier. Services of empty tiers are removed along with the routers pointing at them.
// aleph-api and aleph-vm are filled from reg when the template declares them.
//
// Records matching no tier are counted and logged, never returned.
//
// Returns bad_parameter for an instance type without policy, the loader's errors, or
// internal_server_error when a non-empty tier has no service in the template.
func (a *Assembler) BuildForInstanceType(it domain.InstanceType, reg domain.Registry, records []domain.SystemInfo) (map[string]any, error) {
	buckets, dropped, err := ClassifyByTier(records, it, a.policies)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		a.metrics.recordsDropped(it, len(dropped))
		for _, r := range dropped {
			level.Warn(a.logger).Log("msg", "classification gap, record matches no tier", "instance_type", it,
				"url", r.URL, "cpu", r.CPUCount, "mem_bytes", r.MemBytes, "disk_bytes", r.DiskBytes)
		}
	}

	doc, err := a.loader.LoadTemplate(string(it))
	if err != nil {
		return nil, err
	}
	services, err := httpSection(doc, "services")
	if err != nil {
		return nil, err
	}

	for _, tier := range domain.Tiers {
		name := domain.TierServiceName(tier)
		endpoints, ok := buckets[tier]
		if ok {
			if err := setServers(services, name, endpoints); err != nil {
				return nil, err
			}
			continue
		}
		delete(services, name)
		removeRoutersTo(doc, name)
	}

	if _, ok := services[domain.ServiceAPI]; ok {
		if err := setServers(services, domain.ServiceAPI, ExtractAPIEndpoints(reg)); err != nil {
			return nil, err
		}
	}
	if _, ok := services[domain.ServiceVM]; ok {
		if err := setServers(services, domain.ServiceVM, ExtractResourceEndpoints(reg)); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// httpSection returns doc.http.<name>, which must be a mapping.
func httpSection(doc map[string]any, name string) (map[string]any, error) {
	httpDoc, ok := doc["http"].(map[string]any)
	if !ok {
		return nil, NewInternalServerError("template has no http section", nil)
	}
	section, ok := httpDoc[name].(map[string]any)
	if !ok {
		return nil, NewInternalServerError(fmt.Sprintf("template has no http.%s section", name), nil)
	}
	return section, nil
}

func setServers(services map[string]any, name string, endpoints []domain.Endpoint) error {
	svc, ok := services[name].(map[string]any)
	if !ok {
		return NewInternalServerError(fmt.Sprintf("template has no service %q", name), nil)
	}
	lb, ok := svc["loadBalancer"].(map[string]any)
	if !ok {
		lb = make(map[string]any)
		svc["loadBalancer"] = lb
	}
	lb["servers"] = endpoints
	return nil
}

// removeRoutersTo deletes every http router whose service is name, with or without a provider suffix.
func removeRoutersTo(doc map[string]any, name string) {
	routers, err := httpSection(doc, "routers")
	if err != nil {
		return
	}
	for key, v := range routers {
		router, ok := v.(map[string]any)
		if !ok {
			continue
		}
		service, _ := router["service"].(string)
		if service == name || strings.HasPrefix(service, name+"@") {
			delete(routers, key)
		}
	}
}
