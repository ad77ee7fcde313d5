package domain

import (
	"fmt"

	"proxyconfig/helpers"
)

// InstanceType selects which tier policy (and which config template) a tiered request uses.
type InstanceType string

const (
	InstanceTypeCompute InstanceType = "compute"
	InstanceTypeStorage InstanceType = "storage"
	InstanceTypeMemory  InstanceType = "memory"
)

// InstanceTypes lists the instance types served by GET /api/by_instance_type/{type}.
var InstanceTypes = []InstanceType{InstanceTypeCompute, InstanceTypeStorage, InstanceTypeMemory}

// ParseInstanceType returns the InstanceType for s and whether s is a known instance type.
func ParseInstanceType(s string) (InstanceType, bool) {
	for _, it := range InstanceTypes {
		if string(it) == s {
			return it, true
		}
	}
	return "", false
}

// Tier is a capacity bucket.
type Tier string

const (
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
	TierXLarge Tier = "xlarge"
)

// Tiers lists all tiers from smallest to largest.
var Tiers = []Tier{TierSmall, TierMedium, TierLarge, TierXLarge}

func isTier(t Tier) bool {
	for _, known := range Tiers {
		if known == t {
			return true
		}
	}
	return false
}

// TierServiceName is the template service receiving the URLs of tier t (e.g. aleph-vm-small).
func TierServiceName(t Tier) string {
	return ServiceVM + "-" + string(t)
}

// Metric is a SystemInfo measurement a tier condition is evaluated against.
// cpu is a core count; mem and disk are expressed in GiB.
type Metric string

const (
	MetricCPU  Metric = "cpu"
	MetricMem  Metric = "mem"
	MetricDisk Metric = "disk"
)

const gib = 1 << 30

// MemoryTierMetric is the metric the default memory policy tiers on. Memory tiers have always been
// cut on disk size; switch the memory policy's metric in the tier policy file to tier on RAM.
const MemoryTierMetric = MetricDisk

// Value returns the value of metric m for the record, or false for an unknown metric.
func (s SystemInfo) Value(m Metric) (float64, bool) {
	switch m {
	case MetricCPU:
		return float64(s.CPUCount), true
	case MetricMem:
		return float64(s.MemBytes) / gib, true
	case MetricDisk:
		return float64(s.DiskBytes) / gib, true
	default:
		return 0, false
	}
}

// Condition bounds one metric. Nil bounds are not checked; at least one must be set.
type Condition struct {
	Metric Metric
	GT     *float64
	GTE    *float64
	LT     *float64
	LTE    *float64
}

// Holds reports whether v satisfies every bound of the condition.
func (c Condition) Holds(v float64) bool {
	if c.GT != nil && !(v > *c.GT) {
		return false
	}
	if c.GTE != nil && !(v >= *c.GTE) {
		return false
	}
	if c.LT != nil && !(v < *c.LT) {
		return false
	}
	if c.LTE != nil && !(v <= *c.LTE) {
		return false
	}
	return true
}

// TierRule assigns Tier to records satisfying all of its conditions.
type TierRule struct {
	Tier       Tier
	Conditions []Condition
}

// Matches reports whether every condition of the rule holds for the record.
func (r TierRule) Matches(s SystemInfo) bool {
	for _, c := range r.Conditions {
		v, ok := s.Value(c.Metric)
		if !ok || !c.Holds(v) {
			return false
		}
	}
	return true
}

// TierPolicy is the ordered rule set of one instance type. Rules are checked independently;
// when several match, the last one in declaration order owns the record.
type TierPolicy struct {
	Rules []TierRule
}

// Match returns the tier owning the record, or false when no rule matches.
func (p TierPolicy) Match(s SystemInfo) (Tier, bool) {
	var (
		tier  Tier
		found bool
	)
	for _, r := range p.Rules {
		if r.Matches(s) {
			tier, found = r.Tier, true
		}
	}
	return tier, found
}

// TierPolicies maps an instance type to its policy.
type TierPolicies map[InstanceType]TierPolicy

// TierBuckets maps a tier to the endpoints classified into it. Tiers without members are absent.
type TierBuckets map[Tier][]Endpoint

// DefaultTierPolicies returns the built-in thresholds.
//
// compute: the cpu band decides (<=8 small, 8-16 medium, 16-32 large, >32 xlarge). At the boundary
// core counts 8, 16 and 32, RAM above 32, 64 and 128 GiB respectively moves the node up one tier.
// storage and memory: four-way split on GiB of MetricDisk (see MemoryTierMetric).
func DefaultTierPolicies() TierPolicies {
	p := helpers.Ptr[float64]
	cpuIs := func(n float64) Condition { return Condition{Metric: MetricCPU, GTE: p(n), LTE: p(n)} }
	return TierPolicies{
		InstanceTypeCompute: {Rules: []TierRule{
			{Tier: TierSmall, Conditions: []Condition{{Metric: MetricCPU, LTE: p(8)}}},
			{Tier: TierMedium, Conditions: []Condition{{Metric: MetricCPU, GT: p(8), LTE: p(16)}}},
			{Tier: TierMedium, Conditions: []Condition{cpuIs(8), {Metric: MetricMem, GT: p(32)}}},
			{Tier: TierLarge, Conditions: []Condition{{Metric: MetricCPU, GT: p(16), LTE: p(32)}}},
			{Tier: TierLarge, Conditions: []Condition{cpuIs(16), {Metric: MetricMem, GT: p(64)}}},
			{Tier: TierXLarge, Conditions: []Condition{{Metric: MetricCPU, GT: p(32)}}},
			{Tier: TierXLarge, Conditions: []Condition{cpuIs(32), {Metric: MetricMem, GT: p(128)}}},
		}},
		InstanceTypeStorage: sizePolicy(MetricDisk),
		InstanceTypeMemory:  sizePolicy(MemoryTierMetric),
	}
}

func sizePolicy(m Metric) TierPolicy {
	p := helpers.Ptr[float64]
	return TierPolicy{Rules: []TierRule{
		{Tier: TierSmall, Conditions: []Condition{{Metric: m, LTE: p(1)}}},
		{Tier: TierMedium, Conditions: []Condition{{Metric: m, GT: p(1), LTE: p(2)}}},
		{Tier: TierLarge, Conditions: []Condition{{Metric: m, GT: p(2), LTE: p(4)}}},
		{Tier: TierXLarge, Conditions: []Condition{{Metric: m, GT: p(4)}}},
	}}
}

// ValidateTierPolicies checks that every instance type is known and every rule names a known tier
// and has at least one condition on a known metric with a non-contradictory set of bounds.
//
// Returns nil when valid, or *TierPolicyError describing the first problem found.
func ValidateTierPolicies(policies TierPolicies) error {
	for _, it := range InstanceTypes {
		if _, ok := policies[it]; !ok {
			return &TierPolicyError{InstanceType: it, Index: -1, Reason: "policy is missing"}
		}
	}
	for it, policy := range policies {
		if _, ok := ParseInstanceType(string(it)); !ok {
			return &TierPolicyError{InstanceType: it, Index: -1, Reason: "unknown instance type"}
		}
		if len(policy.Rules) == 0 {
			return &TierPolicyError{InstanceType: it, Index: -1, Reason: "at least one rule is required"}
		}
		for i, rule := range policy.Rules {
			if !isTier(rule.Tier) {
				return &TierPolicyError{InstanceType: it, Index: i, Reason: fmt.Sprintf("unknown tier %q", rule.Tier)}
			}
			if len(rule.Conditions) == 0 {
				return &TierPolicyError{InstanceType: it, Index: i, Reason: "at least one condition is required"}
			}
			for _, c := range rule.Conditions {
				if _, ok := (SystemInfo{}).Value(c.Metric); !ok {
					return &TierPolicyError{InstanceType: it, Index: i, Reason: fmt.Sprintf("unknown metric %q", c.Metric)}
				}
				if c.GT == nil && c.GTE == nil && c.LT == nil && c.LTE == nil {
					return &TierPolicyError{InstanceType: it, Index: i, Reason: "condition needs a bound"}
				}
				if (c.GT != nil && c.GTE != nil) || (c.LT != nil && c.LTE != nil) {
					return &TierPolicyError{InstanceType: it, Index: i, Reason: "gt/gte and lt/lte are mutually exclusive"}
				}
			}
		}
	}
	return nil
}

// TierPolicyError is returned by ValidateTierPolicies. Index is the rule index or -1 for the policy itself.
type TierPolicyError struct {
	InstanceType InstanceType
	Index        int
	Reason       string
}

func (e *TierPolicyError) Error() string {
	return fmt.Sprintf("tier policy %s[%d]: %s", e.InstanceType, e.Index, e.Reason)
}
