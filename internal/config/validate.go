// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/sedscan/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// AMBIENT
	// ------------------------------------------------------------

	switch cfg.Sedscan.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: want debug, info, warn or error", cfg.Sedscan.Logging.Level)
	}

	switch cfg.Sedscan.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q: want text or json", cfg.Sedscan.Logging.Format)
	}

	if len(cfg.Sedscan.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}

	// ------------------------------------------------------------
	// DEVICES
	// ------------------------------------------------------------

	ids := make(map[string]struct{})

	for _, d := range cfg.Sedscan.Devices {
		if d.ID == "" {
			return fmt.Errorf("device: id is required")
		}
		if _, dup := ids[d.ID]; dup {
			return fmt.Errorf("device %q: duplicate id", d.ID)
		}
		ids[d.ID] = struct{}{}

		// device_name sanity (ASCII only)
		for i := 0; i < len(d.DeviceName); i++ {
			if d.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"device %q: device_name must contain ASCII characters only",
					d.ID,
				)
			}
		}

		switch d.Transport.Kind {
		case TransportSGIO, TransportReplay:
		default:
			return fmt.Errorf(
				"device %q: transport.kind %q: want %s or %s",
				d.ID, d.Transport.Kind, TransportSGIO, TransportReplay,
			)
		}
		if d.Transport.Path == "" {
			return fmt.Errorf("device %q: transport.path is required", d.ID)
		}
		if d.Transport.Status != 0 && d.Transport.Kind != TransportReplay {
			return fmt.Errorf("device %q: transport.status is only valid for replay", d.ID)
		}
		if d.Transport.TimeoutMs < 0 {
			return fmt.Errorf("device %q: transport.timeout_ms must be >= 0", d.ID)
		}

		if d.Poll.IntervalMs <= 0 {
			return fmt.Errorf("device %q: poll.interval_ms must be > 0", d.ID)
		}

		for _, t := range d.Targets {
			if t.Endpoint == "" {
				return fmt.Errorf("device %q: target endpoint is required", d.ID)
			}
			switch t.Protocol {
			case "", ProtocolModbus, ProtocolIngest:
			default:
				return fmt.Errorf(
					"device %q: target %s: protocol %q: want %s or %s",
					d.ID, t.Endpoint, t.Protocol, ProtocolModbus, ProtocolIngest,
				)
			}
			if t.StatusSlot == nil {
				return fmt.Errorf("device %q: target %s has no status_slot", d.ID, t.Endpoint)
			}
			// last register of the block must stay addressable
			if (int(*t.StatusSlot)+1)*status.SlotsPerDevice > 65536 {
				return fmt.Errorf(
					"device %q: target %s: status_slot %d out of range",
					d.ID, t.Endpoint, *t.StatusSlot,
				)
			}
			if t.TimeoutMs < 0 {
				return fmt.Errorf("device %q: target %s: timeout_ms must be >= 0", d.ID, t.Endpoint)
			}
		}
	}

	// ------------------------------------------------------------
	// STATUS SLOT OWNERSHIP
	// ------------------------------------------------------------

	// key = endpoint | unit_id | status_slot
	statusOwner := make(map[string]string)

	for _, d := range cfg.Sedscan.Devices {
		for _, t := range d.Targets {
			key := fmt.Sprintf("%s|%d|%d", t.Endpoint, t.UnitID, *t.StatusSlot)

			if prev, exists := statusOwner[key]; exists {
				return fmt.Errorf(
					"status_slot collision: endpoint=%s unit_id=%d slot=%d used by devices %q and %q",
					t.Endpoint,
					t.UnitID,
					*t.StatusSlot,
					prev,
					d.ID,
				)
			}

			statusOwner[key] = d.ID
		}
	}

	return nil
}
