package scenario

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const scenarioBasicWorkflow = "basic_workflow"

func init() {
	Register(scenarioBasicWorkflow, runBasicWorkflow)
}

func runBasicWorkflow(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// 1. Liveness
	var health map[string]any
	if err := GetJSON(ctx, cfg, "/health", http.StatusOK, &health); err != nil {
		return fmt.Errorf("health: %w", err)
	}

	// 2. Readiness
	ready, err := WaitReady(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ready: %w", err)
	}
	nodes, _ := ready["nodes"].(float64)

	// 3. Default config
	var doc map[string]any
	if err := GetJSON(ctx, cfg, "/api", http.StatusOK, &doc); err != nil {
		return fmt.Errorf("default config: %w", err)
	}
	api, ok, err := Servers(doc, "aleph-api")
	if err != nil {
		return fmt.Errorf("default config: %w", err)
	}
	if !ok {
		return fmt.Errorf("default config: aleph-api service missing")
	}
	if len(api) > int(nodes) {
		return fmt.Errorf("default config: %d api servers for %d registry nodes", len(api), int(nodes))
	}
	for _, s := range api {
		url := s["url"].(string)
		if !strings.HasPrefix(url, "http://") || !strings.HasSuffix(url, ":4024/api/") {
			return fmt.Errorf("default config: unexpected api server %q", url)
		}
	}
	vm, ok, err := Servers(doc, "aleph-vm")
	if err != nil {
		return fmt.Errorf("default config: %w", err)
	}
	if !ok {
		return fmt.Errorf("default config: aleph-vm service missing")
	}
	for _, s := range vm {
		url := s["url"].(string)
		if !strings.HasPrefix(url, "https://") || !strings.HasSuffix(url, "/vm/") {
			return fmt.Errorf("default config: unexpected vm server %q", url)
		}
	}

	return nil
}
