package service

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"proxyconfig/domain"

	ma "github.com/multiformats/go-multiaddr"
)

// APIPort is the port API nodes serve their HTTP API on.
const APIPort = 4024

// ip4Segment matches the /ip4/<addr>/ segment every usable multiaddress carries.
var ip4Segment = regexp.MustCompile(`/ip4/([\d.]+)/`)

// ExtractAPIEndpoints returns http://<ip>:4024/api/ for every API node whose multiaddress carries
// an IPv4 address, in registry order. Nodes without one are skipped.
func ExtractAPIEndpoints(reg domain.Registry) []domain.Endpoint {
	endpoints := make([]domain.Endpoint, 0, len(reg.Nodes))
	for _, node := range reg.Nodes {
		ip, ok := MultiaddrIPv4(node.Multiaddress)
		if !ok {
			continue
		}
		endpoints = append(endpoints, domain.Endpoint{URL: fmt.Sprintf("http://%s:%d/api/", ip, APIPort)})
	}
	return endpoints
}

// MultiaddrIPv4 returns the IPv4 address embedded in a multiaddress. The address must be followed
// by another segment, as in /ip4/<addr>/tcp/4025; a bare /ip4/<addr> names no service and is rejected.
// Multiaddresses go-multiaddr refuses to parse (e.g. a malformed /p2p/ peer id) fall back to the
// /ip4/<addr>/ segment alone.
func MultiaddrIPv4(multiaddress string) (string, bool) {
	m := ip4Segment.FindStringSubmatch(multiaddress)
	if m == nil {
		return "", false
	}
	if addr, err := ma.NewMultiaddr(multiaddress); err == nil {
		ip, err := addr.ValueForProtocol(ma.P_IP4)
		if err != nil {
			return "", false
		}
		return ip, true
	}
	if ip := net.ParseIP(m[1]); ip == nil || ip.To4() == nil {
		return "", false
	}
	return m[1], true
}

// ExtractResourceEndpoints returns https://<address>/vm/ for every resource node with a non-empty
// address, in registry order.
func ExtractResourceEndpoints(reg domain.Registry) []domain.Endpoint {
	endpoints := make([]domain.Endpoint, 0, len(reg.ResourceNodes))
	for _, node := range reg.ResourceNodes {
		base, ok := ResourceBaseURL(node.Address)
		if !ok {
			continue
		}
		endpoints = append(endpoints, domain.Endpoint{URL: ResourceEndpointURL(base)})
	}
	return endpoints
}

// ResourceBaseURL normalises a resource node address to https://<host[/path]> without a trailing
// slash. Spaces and surrounding slashes are stripped and http:// is upgraded. Returns false when
// nothing but a scheme is left.
func ResourceBaseURL(address string) (string, bool) {
	s := strings.TrimLeft(strings.TrimSpace(address), "/")
	switch {
	case strings.HasPrefix(s, "https://"):
		s = strings.TrimPrefix(s, "https://")
	case strings.HasPrefix(s, "http://"):
		s = strings.TrimPrefix(s, "http://")
	}
	s = strings.Trim(s, "/")
	if s == "" {
		return "", false
	}
	return "https://" + s, true
}

// ResourceEndpointURL is the load-balancer URL of a resource node base URL.
func ResourceEndpointURL(base string) string {
	return base + "/vm/"
}

// ClassifyByTier buckets each record's URL into the tier its instance type's policy assigns.
// Tiers without members are absent from the result. Records matching no rule are returned as
// dropped, in input order; the caller decides how to report them.
//
// Returns a bad_parameter error when policies has no entry for instanceType.
func ClassifyByTier(records []domain.SystemInfo, instanceType domain.InstanceType, policies domain.TierPolicies) (domain.TierBuckets, []domain.SystemInfo, error) {
	policy, ok := policies[instanceType]
	if !ok {
		return nil, nil, NewBadParameterError(fmt.Sprintf("no tier policy for instance type %q", instanceType), nil)
	}
	buckets := make(domain.TierBuckets)
	var dropped []domain.SystemInfo
	for _, r := range records {
		tier, ok := policy.Match(r)
		if !ok {
			dropped = append(dropped, r)
			continue
		}
		buckets[tier] = append(buckets[tier], domain.Endpoint{URL: r.URL})
	}
	return buckets, dropped, nil
}
