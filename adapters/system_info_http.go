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
)

// SystemUsagePath is the per-node capacity endpoint, relative to the node base URL.
const SystemUsagePath = "/about/usage/system"

// SystemInfoHTTP creates an interfaces.SystemInfoFetcher reading GET <base>/about/usage/system.
// Panics on nil client or a non-positive timeout.
//
// Called from cmd/main; used by service.SystemInfoCollector for every resource node.
func SystemInfoHTTP(client *http.Client, timeout time.Duration) interfaces.SystemInfoFetcher {
	if timeout <= 0 {
		panic("adapters.system_info_http.go: timeout must be positive")
	}
	return &systemInfoHTTP{
		client:  helpers.NilPanic(client, "adapters.system_info_http.go: http client is required"),
		timeout: timeout,
	}
}

type systemInfoHTTP struct {
	client  *http.Client
	timeout time.Duration
}

// systemUsageResponse is the subset of the node usage document we read. Sizes are in kB (1000 bytes).
type systemUsageResponse struct {
	CPU *struct {
		Count int `json:"count"`
	} `json:"cpu"`
	Mem struct {
		TotalKB int64 `json:"total_kB"`
	} `json:"mem"`
	Disk struct {
		TotalKB int64 `json:"total_kB"`
	} `json:"disk"`
}

// FetchSystemInfo performs GET baseURL/about/usage/system bounded by the adapter timeout.
//
// Returns: (record, nil) with URL set to endpointURL; an error on network failure, non-2xx status,
// undecodable body or a body without "cpu".
func (s *systemInfoHTTP) FetchSystemInfo(ctx context.Context, baseURL string, endpointURL string) (domain.SystemInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+SystemUsagePath, nil)
	if err != nil {
		return domain.SystemInfo{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return domain.SystemInfo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.SystemInfo{}, fmt.Errorf("system usage of %s returned %d", baseURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SystemInfo{}, err
	}
	var raw systemUsageResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.SystemInfo{}, fmt.Errorf("decode system usage of %s: %w", baseURL, err)
	}
	if raw.CPU == nil {
		return domain.SystemInfo{}, fmt.Errorf("system usage of %s has no cpu field", baseURL)
	}
	return domain.SystemInfo{
		URL:       endpointURL,
		CPUCount:  raw.CPU.Count,
		MemBytes:  raw.Mem.TotalKB * 1000,
		DiskBytes: raw.Disk.TotalKB * 1000,
	}, nil
}
