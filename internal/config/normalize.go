// internal/config/normalize.go
package config

import "github.com/tamzrod/sedscan/internal/status"

const (
	defaultTransportTimeoutMs = 5000
	defaultTargetTimeoutMs    = 2000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Sedscan.Logging.Level == "" {
		cfg.Sedscan.Logging.Level = "info"
	}
	if cfg.Sedscan.Logging.Format == "" {
		cfg.Sedscan.Logging.Format = "text"
	}

	for di := range cfg.Sedscan.Devices {
		d := &cfg.Sedscan.Devices[di]

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to the status block name capacity
		if len(d.DeviceName) > status.DeviceNameMaxChars {
			d.DeviceName = d.DeviceName[:status.DeviceNameMaxChars]
		}

		if d.Transport.TimeoutMs == 0 {
			d.Transport.TimeoutMs = defaultTransportTimeoutMs
		}

		for ti := range d.Targets {
			t := &d.Targets[ti]
			if t.Protocol == "" {
				t.Protocol = ProtocolModbus
			}
			if t.TimeoutMs == 0 {
				t.TimeoutMs = defaultTargetTimeoutMs
			}
		}
	}
}
