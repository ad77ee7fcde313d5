package interfaces

import (
	"context"

	"proxyconfig/domain"
)

// SystemInfoFetcher reads the capacity of a single resource node.
//
//go:generate moq -stub -out mock/system_info_fetcher.go -pkg mock . SystemInfoFetcher
type SystemInfoFetcher interface {
	// FetchSystemInfo performs GET baseURL/about/usage/system and returns the node capacity.
	// endpointURL is stored in the returned record's URL field.
	// Returns an error on network failure, non-2xx status, undecodable body or a body without "cpu".
	FetchSystemInfo(ctx context.Context, baseURL string, endpointURL string) (domain.SystemInfo, error)
}
