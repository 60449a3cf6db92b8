// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/sedscan/internal/config"
	"github.com/tamzrod/sedscan/internal/device"
	"github.com/tamzrod/sedscan/internal/discovery"
	"github.com/tamzrod/sedscan/internal/poller/replay"
	"github.com/tamzrod/sedscan/internal/poller/sgio"
)

// NewFactory returns the transport factory for one device config.
func NewFactory(t cfg.TransportConfig) (Factory, error) {
	switch t.Kind {
	case cfg.TransportSGIO:
		return func() (Transport, error) {
			return sgio.Open(sgio.Config{
				Path:    t.Path,
				Timeout: time.Duration(t.TimeoutMs) * time.Millisecond,
			})
		}, nil
	case cfg.TransportReplay:
		return func() (Transport, error) {
			return replay.Open(replay.Config{Path: t.Path, Status: t.Status})
		}, nil
	default:
		return nil, fmt.Errorf("poller: unsupported transport %q", t.Kind)
	}
}

// Build constructs a Poller and its Device.
// The transport is opened lazily and reused while healthy.
// On transport death, Poller discards it and uses the factory on a future tick.
// No retries, no loops, no semantics.
func Build(d cfg.DeviceConfig, obs discovery.Observer) (*Poller, error) {
	factory, err := NewFactory(d.Transport)
	if err != nil {
		return nil, err
	}

	dev, err := device.New(d.ID, obs)
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			DeviceID: d.ID,
			Interval: time.Duration(d.Poll.IntervalMs) * time.Millisecond,
		},
		dev,
		nil,
		factory,
	)
}
