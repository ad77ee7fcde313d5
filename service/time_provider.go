package service

import (
	"time"

	"proxyconfig/helpers"
	"proxyconfig/interfaces"
)

// timeProvider implements interfaces.TimeProvider via the injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Called from cmd/main with time.Now().UTC and from tests with helpers.TestNow.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}
