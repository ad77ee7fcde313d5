package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"proxyconfig/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(envHTTPPort, "8080")
	t.Setenv(envTemplatesDir, dir)
	for _, name := range []string{envGRPCPort, envTrustedHosts, envRefreshIntervalMs, envUpstreamTimeoutMs, envEnrichConcurrency, envLogLevel, envTierPolicyPath} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 0, cfg.GRPCPort)
	assert.Equal(t, dir, cfg.TemplatesDir)
	assert.Equal(t, []string{"https://api1.aleph.im", "https://api2.aleph.im"}, cfg.TrustedHosts)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 16, cfg.EnrichConcurrency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, domain.DefaultTierPolicies(), cfg.TierPolicies)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(envGRPCPort, "50051")
	t.Setenv(envTrustedHosts, " https://a.example.org/ , ,http://b.example.org")
	t.Setenv(envRefreshIntervalMs, "1500")
	t.Setenv(envUpstreamTimeoutMs, "2000")
	t.Setenv(envEnrichConcurrency, "4")
	t.Setenv(envLogLevel, "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, []string{"https://a.example.org", "http://b.example.org"}, cfg.TrustedHosts)
	assert.Equal(t, 1500*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 4, cfg.EnrichConcurrency)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantContain string
	}{
		{name: "http_port_required", env: map[string]string{envHTTPPort: ""}, wantContain: "SERVICE_PORT_HTTP is required"},
		{name: "http_port_not_a_number", env: map[string]string{envHTTPPort: "http"}, wantContain: "invalid SERVICE_PORT_HTTP"},
		{name: "http_port_out_of_range", env: map[string]string{envHTTPPort: "70000"}, wantContain: "1-65535"},
		{name: "grpc_port_invalid", env: map[string]string{envGRPCPort: "-1"}, wantContain: "SERVICE_PORT_GRPC"},
		{name: "templates_dir_required", env: map[string]string{envTemplatesDir: ""}, wantContain: "TEMPLATES_DIR is required"},
		{name: "templates_dir_missing", env: map[string]string{envTemplatesDir: "/definitely/not/here"}, wantContain: "existing directory"},
		{name: "trusted_hosts_without_scheme", env: map[string]string{envTrustedHosts: "api2.aleph.im"}, wantContain: "must start with"},
		{name: "trusted_hosts_only_commas", env: map[string]string{envTrustedHosts: ", ,"}, wantContain: "at least one host"},
		{name: "refresh_interval_zero", env: map[string]string{envRefreshIntervalMs: "0"}, wantContain: "REFRESH_INTERVAL_MS must be positive"},
		{name: "upstream_timeout_invalid", env: map[string]string{envUpstreamTimeoutMs: "soon"}, wantContain: "invalid UPSTREAM_TIMEOUT_MS"},
		{name: "concurrency_negative", env: map[string]string{envEnrichConcurrency: "-3"}, wantContain: "ENRICH_CONCURRENCY must be positive"},
		{name: "log_level_unknown", env: map[string]string{envLogLevel: "trace"}, wantContain: "LOG_LEVEL"},
		{name: "tier_policy_missing_file", env: map[string]string{envTierPolicyPath: "/definitely/not/here.yaml"}, wantContain: "load tier policies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantContain)
		})
	}
}

func TestLoadConfig_TierPolicyFile(t *testing.T) {
	dir := setRequiredEnv(t)
	path := filepath.Join(dir, "tiers.yaml")
	content := `
memory:
  - tier: small
    conditions:
      - {metric: mem, lte: 16}
  - tier: xlarge
    conditions:
      - {metric: mem, gt: 16}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv(envTierPolicyPath, path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	defaults := domain.DefaultTierPolicies()
	assert.Equal(t, defaults[domain.InstanceTypeCompute], cfg.TierPolicies[domain.InstanceTypeCompute])
	assert.Equal(t, defaults[domain.InstanceTypeStorage], cfg.TierPolicies[domain.InstanceTypeStorage])

	memory := cfg.TierPolicies[domain.InstanceTypeMemory]
	require.Len(t, memory.Rules, 2)
	assert.Equal(t, domain.MetricMem, memory.Rules[0].Conditions[0].Metric)
	tier, ok := memory.Match(domain.SystemInfo{MemBytes: 64 << 30, DiskBytes: 1 << 20})
	require.True(t, ok)
	assert.Equal(t, domain.TierXLarge, tier)
}

func TestLoadConfig_TierPolicyFile_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantContain string
	}{
		{
			name:        "unknown_metric",
			content:     "compute:\n  - tier: small\n    conditions:\n      - {metric: gpu, lte: 1}\n",
			wantContain: "unknown metric",
		},
		{
			name:        "unknown_tier",
			content:     "storage:\n  - tier: huge\n    conditions:\n      - {metric: disk, gt: 1}\n",
			wantContain: "unknown tier",
		},
		{
			name:        "unknown_instance_type",
			content:     "gpu:\n  - tier: small\n    conditions:\n      - {metric: cpu, gt: 1}\n",
			wantContain: "unknown instance type",
		},
		{
			name:        "not_yaml",
			content:     "compute: [unclosed\n",
			wantContain: "load tier policies",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setRequiredEnv(t)
			path := filepath.Join(dir, "tiers.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			t.Setenv(envTierPolicyPath, path)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantContain)
		})
	}
}
