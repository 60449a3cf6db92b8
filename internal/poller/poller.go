// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/sedscan/internal/device"
	"github.com/tamzrod/sedscan/internal/discovery"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	DeviceID string
	Interval time.Duration
}

// Poller is a dumb, clock-driven discoverer for one device.
type Poller struct {
	cfg     Config
	dev     *device.Device
	tr      Transport
	factory Factory
}

// New creates a poller with immutable config.
// tr may be nil; the factory then opens it on the first cycle.
func New(cfg Config, dev *device.Device, tr Transport, factory Factory) (*Poller, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("poller: device id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if dev == nil {
		return nil, errors.New("poller: device required")
	}
	if tr == nil && factory == nil {
		return nil, errors.New("poller: transport or factory required")
	}
	return &Poller{cfg: cfg, dev: dev, tr: tr, factory: factory}, nil
}

// Device returns the device this poller discovers.
func (p *Poller) Device() *device.Device { return p.dev }

// PollOnce performs exactly one discovery cycle.
// All-or-nothing: any failure leaves the published model untouched.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		DeviceID: p.cfg.DeviceID,
		At:       time.Now(),
	}

	var tr discovery.Transport = p.tr
	if p.tr == nil {
		opened, err := p.open()
		if err != nil {
			// Run the failure through the device so state and events stay uniform.
			tr = discovery.TransportFunc(func(uint8, uint16, []byte) (uint8, error) {
				return 0, err
			})
		} else {
			p.tr = opened
			tr = opened
		}
	}

	caps, err := p.dev.Discover(tr)
	if err != nil {
		if transportDead(err) {
			p.drop()
		}
		res.Err = err
		return res
	}

	res.Capabilities = &caps
	return res
}

// Close releases the current transport, if any.
func (p *Poller) Close() error {
	if p.tr == nil {
		return nil
	}
	err := p.tr.Close()
	p.tr = nil
	return err
}

func (p *Poller) open() (Transport, error) {
	if p.factory == nil {
		return nil, errors.New("poller: no transport factory")
	}
	tr, err := p.factory()
	if err != nil {
		return nil, fmt.Errorf("poller: open transport: %w", err)
	}
	return tr, nil
}

// drop discards the transport so the factory reopens it on a future tick.
// Without a factory the transport is kept.
func (p *Poller) drop() {
	if p.factory == nil || p.tr == nil {
		return
	}
	_ = p.tr.Close()
	p.tr = nil
}

// transportDead reports whether err came from the transport itself rather than
// from the drive answering with a nonzero status or a bad payload.
func transportDead(err error) bool {
	var de *discovery.DecodeError
	if !errors.As(err, &de) {
		return true
	}
	return errors.Is(de.Kind, discovery.ErrTransportFailure) && de.Status == 0
}
