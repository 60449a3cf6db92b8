// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// Transport is a discovery transport the poller owns and may close.
type Transport interface {
	discovery.Transport
	Close() error
}

// Factory opens a transport. ONE attempt per call.
type Factory func() (Transport, error)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	DeviceID string
	At       time.Time

	// Capabilities is the model decoded by this cycle.
	// nil when Err is set.
	Capabilities *discovery.Capabilities

	Err error // non-nil means the discovery cycle failed
}
