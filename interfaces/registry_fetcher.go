package interfaces

import (
	"context"

	"proxyconfig/domain"
)

// RegistryFetcher downloads the node registry from the upstream aggregation API.
//
// Implemented by adapters.RegistryHTTP. Called from service.Refresher on every registry cycle.
//
//go:generate moq -stub -out mock/registry_fetcher.go -pkg mock . RegistryFetcher
type RegistryFetcher interface {
	// FetchRegistry tries each trusted host once, in order.
	// Returns (registry, nil) from the first host that answers with a well-formed document;
	// upstream_unavailable wrapping the last host's error when every host failed.
	FetchRegistry(ctx context.Context) (domain.Registry, error)
}
