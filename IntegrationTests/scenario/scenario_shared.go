package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const readyPollInterval = 500 * time.Millisecond

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Get performs a GET on cfg.BaseURL+path and returns the status code and body.
func Get(ctx context.Context, cfg *Config, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(cfg.BaseURL, "/")+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// GetJSON performs a GET, checks the status against want and decodes the body into out.
func GetJSON(ctx context.Context, cfg *Config, path string, want int, out any) error {
	status, body, err := Get(ctx, cfg, path)
	if err != nil {
		return err
	}
	if status != want {
		return &UnexpectedStatusError{Path: path, Got: status, Want: want, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// WaitReady polls /ready until the service reports a cached registry or ctx expires.
func WaitReady(ctx context.Context, cfg *Config) (map[string]any, error) {
	for {
		var ready map[string]any
		err := GetJSON(ctx, cfg, "/ready", http.StatusOK, &ready)
		if err == nil {
			return ready, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("service never became ready: %w (last error: %v)", ctx.Err(), err)
		case <-time.After(readyPollInterval):
		}
	}
}

// Servers returns http.services.<service>.loadBalancer.servers of a config document.
// ok is false when the service is not declared.
func Servers(doc map[string]any, service string) ([]map[string]any, bool, error) {
	httpDoc, _ := doc["http"].(map[string]any)
	services, _ := httpDoc["services"].(map[string]any)
	svc, ok := services[service].(map[string]any)
	if !ok {
		return nil, false, nil
	}
	lb, _ := svc["loadBalancer"].(map[string]any)
	raw, ok := lb["servers"].([]any)
	if !ok {
		return nil, true, fmt.Errorf("service %s: servers is %T, want list", service, lb["servers"])
	}
	out := make([]map[string]any, 0, len(raw))
	for i, s := range raw {
		entry, ok := s.(map[string]any)
		if !ok {
			return nil, true, fmt.Errorf("service %s: server %d is %T", service, i, s)
		}
		url, _ := entry["url"].(string)
		if url == "" {
			return nil, true, fmt.Errorf("service %s: server %d has no url", service, i)
		}
		out = append(out, entry)
	}
	return out, true, nil
}
