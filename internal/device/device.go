// internal/device/device.go
package device

import (
	"errors"
	"sync/atomic"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// Device is one drive handle. It owns the published capability model.
//
// Discover is called from a single goroutine (the poller). Readers may call
// the accessors concurrently; they always see a complete model.
type Device struct {
	id  string
	obs discovery.Observer

	state atomic.Pointer[State]
}

// State is the outcome of the most recent discovery attempt.
// It is published as a whole and never mutated afterwards.
type State struct {
	// Capabilities is the last successfully decoded model, nil before the first success.
	Capabilities *discovery.Capabilities

	// Present is true when the most recent attempt produced Capabilities.
	Present bool

	// Err is the error of the most recent attempt, nil on success.
	Err error
}

// New creates a device handle with no model published.
func New(id string, obs discovery.Observer) (*Device, error) {
	if id == "" {
		return nil, errors.New("device: id required")
	}
	if obs == nil {
		obs = discovery.NopObserver{}
	}
	d := &Device{id: id, obs: obs}
	d.state.Store(&State{})
	return d, nil
}

// ID returns the device id.
func (d *Device) ID() string { return d.id }

// Discover runs one Level 0 Discovery through tr.
// On success the new model replaces the published one in a single swap.
// On failure the published model is kept and only the outcome changes.
func (d *Device) Discover(tr discovery.Transport) (discovery.Capabilities, error) {
	caps, err := discovery.Decode(tr,
		discovery.WithObserver(d.obs),
		discovery.WithDeviceID(d.id),
	)
	if err != nil {
		d.state.Store(&State{
			Capabilities: d.state.Load().Capabilities,
			Err:          err,
		})
		return discovery.Capabilities{}, err
	}

	d.state.Store(&State{Capabilities: caps, Present: true})
	return *caps, nil
}

// State returns the outcome of the most recent attempt as one consistent view.
func (d *Device) State() State {
	return *d.state.Load()
}

// IsPresent reports whether the last discovery attempt produced a model.
func (d *Device) IsPresent() bool {
	return d.state.Load().Present
}

// LastError returns the error of the last discovery attempt, or nil.
func (d *Device) LastError() error {
	return d.state.Load().Err
}

// Capabilities returns a copy of the last successfully decoded model.
// ok is false if no discovery ever succeeded.
func (d *Device) Capabilities() (caps discovery.Capabilities, ok bool) {
	p := d.state.Load().Capabilities
	if p == nil {
		return discovery.Capabilities{}, false
	}
	return *p, true
}

// SupportsOpal2 reports Opal 2.0 support from the published model.
func (d *Device) SupportsOpal2() bool {
	return d.state.Load().Capabilities.SupportsOpal2()
}

// BaseComID returns the Opal 2.0 base comID from the published model, or 0.
func (d *Device) BaseComID() uint16 {
	return d.state.Load().Capabilities.BaseComID()
}
