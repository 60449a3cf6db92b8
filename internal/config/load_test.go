// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
sedscan:
  logging:
    level: debug
  metrics:
    listen: ":9273"
  devices:
    - id: sda
      device_name: "BAY-01-SAMSUNG-PM883"
      transport:
        kind: sgio
        path: /dev/sda
      poll:
        interval_ms: 60000
      targets:
        - endpoint: 10.0.0.5:502
          unit_id: 1
          status_slot: 2
    - id: lab
      transport:
        kind: replay
        path: testdata/d0.bin
        status: 0
      poll:
        interval_ms: 1000
`

func TestLoad_Sample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sedscan.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
	Normalize(cfg)

	if got := len(cfg.Sedscan.Devices); got != 2 {
		t.Fatalf("expected 2 devices, got %d", got)
	}

	d := cfg.Sedscan.Devices[0]
	if d.DeviceName != "BAY-01-SAMSUNG-P" {
		t.Fatalf("device_name not truncated: %q", d.DeviceName)
	}
	if d.Transport.TimeoutMs != defaultTransportTimeoutMs {
		t.Fatalf("transport timeout default: got=%d", d.Transport.TimeoutMs)
	}
	if d.Targets[0].Protocol != ProtocolModbus {
		t.Fatalf("target protocol default: got=%q", d.Targets[0].Protocol)
	}
	if d.Targets[0].TimeoutMs != defaultTargetTimeoutMs {
		t.Fatalf("target timeout default: got=%d", d.Targets[0].TimeoutMs)
	}
	if *d.Targets[0].StatusSlot != 2 {
		t.Fatalf("status_slot: got=%d", *d.Targets[0].StatusSlot)
	}
	if cfg.Sedscan.Logging.Level != "debug" || cfg.Sedscan.Logging.Format != "text" {
		t.Fatalf("logging: got=%+v", cfg.Sedscan.Logging)
	}
	if cfg.Sedscan.Metrics.Listen != ":9273" {
		t.Fatalf("metrics.listen: got=%q", cfg.Sedscan.Metrics.Listen)
	}
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("sedscan:\n  devises: []\n"))
	if err == nil {
		t.Fatalf("expected error for unknown key, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
