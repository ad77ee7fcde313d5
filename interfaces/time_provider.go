package interfaces

import "time"

// TimeProvider supplies the current time for slot timestamps.
// Injected so tests can use a fixed clock instead of time.Now().
type TimeProvider interface {
	Now() time.Time
}
