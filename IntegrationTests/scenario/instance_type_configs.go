package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioInstanceTypeConfigs = "instance_type_configs"

var (
	instanceTypes = []string{"compute", "storage", "memory"}
	tierServices  = []string{"aleph-vm-small", "aleph-vm-medium", "aleph-vm-large", "aleph-vm-xlarge"}
)

func init() {
	Register(scenarioInstanceTypeConfigs, runInstanceTypeConfigs)
}

// runInstanceTypeConfigs checks that every tier service left in a per-type config has servers
// and that no endpoint is listed under two tiers.
func runInstanceTypeConfigs(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if _, err := WaitReady(ctx, cfg); err != nil {
		return fmt.Errorf("ready: %w", err)
	}

	for _, it := range instanceTypes {
		var doc map[string]any
		if err := GetJSON(ctx, cfg, "/api/by_instance_type/"+it, http.StatusOK, &doc); err != nil {
			return fmt.Errorf("%s config: %w", it, err)
		}
		owner := make(map[string]string)
		for _, svc := range tierServices {
			servers, ok, err := Servers(doc, svc)
			if err != nil {
				return fmt.Errorf("%s config: %w", it, err)
			}
			if !ok {
				continue
			}
			if len(servers) == 0 {
				return fmt.Errorf("%s config: %s is declared with no servers", it, svc)
			}
			for _, s := range servers {
				url := s["url"].(string)
				if prev, dup := owner[url]; dup {
					return fmt.Errorf("%s config: %s listed under %s and %s", it, url, prev, svc)
				}
				owner[url] = svc
			}
		}
	}
	return nil
}
