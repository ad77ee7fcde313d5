package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"proxyconfig/adapters"
	"proxyconfig/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort          = "SERVICE_PORT_HTTP"
	envGRPCPort          = "SERVICE_PORT_GRPC"
	envTemplatesDir      = "TEMPLATES_DIR"
	envTrustedHosts      = "TRUSTED_HOSTS"
	envRefreshIntervalMs = "REFRESH_INTERVAL_MS"
	envUpstreamTimeoutMs = "UPSTREAM_TIMEOUT_MS"
	envEnrichConcurrency = "ENRICH_CONCURRENCY"
	envLogLevel          = "LOG_LEVEL"
	envTierPolicyPath    = "TIER_POLICY_PATH"
)

// Defaults applied when the optional variables are unset.
const (
	defaultRefreshInterval   = 30 * time.Second
	defaultUpstreamTimeout   = 30 * time.Second
	defaultEnrichConcurrency = 16
	defaultLogLevel          = "info"
)

// Config holds the service configuration loaded by LoadConfig.
// GRPCPort is 0 when the gRPC health server is disabled.
type Config struct {
	HTTPPort          int
	GRPCPort          int
	TemplatesDir      string
	TrustedHosts      []string
	RefreshInterval   time.Duration
	UpstreamTimeout   time.Duration
	EnrichConcurrency int
	LogLevel          string
	TierPolicies      domain.TierPolicies
}

// yamlTierPolicies is the tier policy file: instance type → ordered rules.
//
//	compute:
//	  - tier: small
//	    conditions:
//	      - {metric: cpu, lte: 8}
//	      - {metric: mem, lte: 32}
type yamlTierPolicies map[string][]yamlTierRule

type yamlTierRule struct {
	Tier       string          `yaml:"tier"`
	Conditions []yamlCondition `yaml:"conditions"`
}

type yamlCondition struct {
	Metric string   `yaml:"metric"`
	GT     *float64 `yaml:"gt"`
	GTE    *float64 `yaml:"gte"`
	LT     *float64 `yaml:"lt"`
	LTE    *float64 `yaml:"lte"`
}

// LoadConfig builds the configuration from environment variables. SERVICE_PORT_HTTP and TEMPLATES_DIR
// are required; everything else has a default. When TIER_POLICY_PATH is set, the instance types it
// lists replace the built-in policies and the result is validated.
//
// Returns: (*Config, nil) on success; (nil, error) on a missing or invalid variable, an unreadable
// templates dir or an invalid tier policy file.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := portFromEnv(envHTTPPort, true)
	if err != nil {
		return nil, err
	}
	grpcPort, err := portFromEnv(envGRPCPort, false)
	if err != nil {
		return nil, err
	}

	templatesDir := strings.TrimSpace(os.Getenv(envTemplatesDir))
	if templatesDir == "" {
		return nil, fmt.Errorf("%s is required", envTemplatesDir)
	}
	if templatesDir, err = filepath.Abs(templatesDir); err != nil {
		return nil, err
	}
	if info, err := os.Stat(templatesDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s must be an existing directory, got %q", envTemplatesDir, templatesDir)
	}

	trustedHosts := adapters.DefaultTrustedHosts
	if raw := strings.TrimSpace(os.Getenv(envTrustedHosts)); raw != "" {
		trustedHosts = nil
		for _, h := range strings.Split(raw, ",") {
			h = strings.TrimRight(strings.TrimSpace(h), "/")
			if h == "" {
				continue
			}
			if !strings.HasPrefix(h, "http://") && !strings.HasPrefix(h, "https://") {
				return nil, fmt.Errorf("%s: host %q must start with http:// or https://", envTrustedHosts, h)
			}
			trustedHosts = append(trustedHosts, h)
		}
		if len(trustedHosts) == 0 {
			return nil, fmt.Errorf("%s must list at least one host", envTrustedHosts)
		}
	}

	refreshInterval, err := durationMsFromEnv(envRefreshIntervalMs, defaultRefreshInterval)
	if err != nil {
		return nil, err
	}
	upstreamTimeout, err := durationMsFromEnv(envUpstreamTimeoutMs, defaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}
	concurrency, err := positiveIntFromEnv(envEnrichConcurrency, defaultEnrichConcurrency)
	if err != nil {
		return nil, err
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv(envLogLevel)))
	if logLevel == "" {
		logLevel = defaultLogLevel
	}
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%s must be debug|info|warn|error, got %q", envLogLevel, logLevel)
	}

	policies := domain.DefaultTierPolicies()
	if path := strings.TrimSpace(os.Getenv(envTierPolicyPath)); path != "" {
		if policies, err = loadTierPolicies(path, policies); err != nil {
			return nil, fmt.Errorf("load tier policies %s: %w", path, err)
		}
	}

	return &Config{
		HTTPPort:          httpPort,
		GRPCPort:          grpcPort,
		TemplatesDir:      templatesDir,
		TrustedHosts:      trustedHosts,
		RefreshInterval:   refreshInterval,
		UpstreamTimeout:   upstreamTimeout,
		EnrichConcurrency: concurrency,
		LogLevel:          logLevel,
		TierPolicies:      policies,
	}, nil
}

// loadTierPolicies reads the yaml file at path and overrides the matching instance types of base.
func loadTierPolicies(path string, base domain.TierPolicies) (domain.TierPolicies, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw yamlTierPolicies
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(domain.TierPolicies, len(base))
	for it, p := range base {
		out[it] = p
	}
	for name, rules := range raw {
		policy := domain.TierPolicy{Rules: make([]domain.TierRule, 0, len(rules))}
		for _, r := range rules {
			rule := domain.TierRule{Tier: domain.Tier(strings.TrimSpace(r.Tier))}
			for _, c := range r.Conditions {
				rule.Conditions = append(rule.Conditions, domain.Condition{
					Metric: domain.Metric(strings.TrimSpace(c.Metric)),
					GT:     c.GT,
					GTE:    c.GTE,
					LT:     c.LT,
					LTE:    c.LTE,
				})
			}
			policy.Rules = append(policy.Rules, rule)
		}
		out[domain.InstanceType(strings.TrimSpace(name))] = policy
	}
	if err := domain.ValidateTierPolicies(out); err != nil {
		return nil, err
	}
	return out, nil
}

func portFromEnv(name string, required bool) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}

func durationMsFromEnv(name string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if ms <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func positiveIntFromEnv(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return n, nil
}
