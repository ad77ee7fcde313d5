package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"proxyconfig/domain"
	"proxyconfig/helpers"
	"proxyconfig/interfaces"
	"proxyconfig/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// RegistryPath is the corechannel aggregate query appended to every trusted host.
const RegistryPath = "/api/v0/aggregates/0xa1B3bb7d2332383D96b7796B908fB7f7F3c2Be10.json?keys=corechannel&limit=50"

// DefaultTrustedHosts are queried in order when no TRUSTED_HOSTS override is configured.
var DefaultTrustedHosts = []string{"https://api1.aleph.im", "https://api2.aleph.im"}

// RegistryHTTP creates an interfaces.RegistryFetcher that downloads the corechannel aggregate from the
// first trusted host that answers. Panics on empty hosts or path, nil client or logger, or a non-positive timeout.
//
// Parameters:
//   - hosts: ordered base URLs without trailing slash
//   - path: query appended to each host (RegistryPath)
//   - client: HTTP client
//   - timeout: bound of one request (30s in main)
//
// Returns: interfaces.RegistryFetcher (*registryHTTP).
//
// Called from cmd/main; used by service.Refresher.
func RegistryHTTP(hosts []string, path string, client *http.Client, timeout time.Duration, logger log.Logger) interfaces.RegistryFetcher {
	if len(hosts) == 0 {
		panic("adapters.registry_http.go: at least one trusted host is required")
	}
	for _, h := range hosts {
		helpers.StrPanic(h, "adapters.registry_http.go: trusted host must not be empty")
	}
	if timeout <= 0 {
		panic("adapters.registry_http.go: timeout must be positive")
	}
	return &registryHTTP{
		hosts:   append([]string(nil), hosts...),
		path:    helpers.StrPanic(path, "adapters.registry_http.go: path is required"),
		client:  helpers.NilPanic(client, "adapters.registry_http.go: http client is required"),
		timeout: timeout,
		logger:  log.With(helpers.NilPanic(logger, "adapters.registry_http.go: logger is required"), "component", "registry_http"),
	}
}

// registryHTTP implements interfaces.RegistryFetcher over the aggregation API.
type registryHTTP struct {
	hosts   []string
	path    string
	client  *http.Client
	timeout time.Duration
	logger  log.Logger
}

// aggregateResponse is the JSON shape of the aggregate endpoint: {"data": {"corechannel": {...}}}.
// Pointers tell a missing key apart from an empty one.
type aggregateResponse struct {
	Data *struct {
		Corechannel *corechannel `json:"corechannel"`
	} `json:"data"`
}

type corechannel struct {
	Nodes         []apiNode      `json:"nodes"`
	ResourceNodes []resourceNode `json:"resource_nodes"`
}

type apiNode struct {
	Hash         string `json:"hash"`
	Name         string `json:"name"`
	Multiaddress string `json:"multiaddress"`
	Status       string `json:"status"`
}

type resourceNode struct {
	Hash    string `json:"hash"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
	Status  string `json:"status"`
}

// FetchRegistry tries each host exactly once, in order, and returns the first well-formed registry.
// A failing host (network error, timeout, non-2xx, undecodable or malformed document) is logged and skipped.
//
// Returns: (registry, nil) on the first success; upstream_unavailable wrapping the last host's error
// when every host failed; ctx.Err() when ctx is cancelled between hosts.
func (r *registryHTTP) FetchRegistry(ctx context.Context) (domain.Registry, error) {
	var lastErr error
	for _, host := range r.hosts {
		if err := ctx.Err(); err != nil {
			return domain.Registry{}, err
		}
		reg, err := r.fetchFrom(ctx, host)
		if err == nil {
			return reg, nil
		}
		level.Warn(r.logger).Log("msg", "trusted host failed, trying next", "host", host, "err", err)
		lastErr = err
	}
	return domain.Registry{}, service.NewUpstreamUnavailableError(
		fmt.Sprintf("all %d trusted hosts failed", len(r.hosts)), lastErr)
}

func (r *registryHTTP) fetchFrom(ctx context.Context, host string) (domain.Registry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+r.path, nil)
	if err != nil {
		return domain.Registry{}, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return domain.Registry{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Registry{}, fmt.Errorf("registry host %s returned %d", host, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Registry{}, err
	}
	return parseRegistry(body)
}

// parseRegistry decodes an aggregate document. Missing data or data.corechannel is malformed_registry;
// missing nodes or resource_nodes decode as empty collections.
func parseRegistry(body []byte) (domain.Registry, error) {
	var raw aggregateResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Registry{}, fmt.Errorf("decode registry: %w", err)
	}
	if raw.Data == nil || raw.Data.Corechannel == nil {
		return domain.Registry{}, service.NewMalformedRegistryError("registry document has no data.corechannel", nil)
	}
	cc := raw.Data.Corechannel
	reg := domain.Registry{
		Nodes:         make([]domain.APINode, 0, len(cc.Nodes)),
		ResourceNodes: make([]domain.ResourceNode, 0, len(cc.ResourceNodes)),
	}
	for _, n := range cc.Nodes {
		reg.Nodes = append(reg.Nodes, domain.APINode{
			Hash:         n.Hash,
			Name:         n.Name,
			Multiaddress: n.Multiaddress,
			Status:       n.Status,
		})
	}
	for _, n := range cc.ResourceNodes {
		reg.ResourceNodes = append(reg.ResourceNodes, domain.ResourceNode{
			Hash:    n.Hash,
			Name:    n.Name,
			Address: n.Address,
			Type:    n.Type,
			Status:  n.Status,
		})
	}
	return reg, nil
}
