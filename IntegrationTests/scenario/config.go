package scenario

// Config holds settings for running a scenario against a deployed proxyconfig instance.
type Config struct {
	// BaseURL is the HTTP root of the service, e.g. http://localhost:8080.
	BaseURL string
	// GRPCAddr is the gRPC health address. Empty skips gRPC checks.
	GRPCAddr string
}
