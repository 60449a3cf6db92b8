// internal/config/config.go
package config

type Config struct {
	Sedscan SedscanConfig `yaml:"sedscan"`
}

type SedscanConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	EventLog EventLogConfig `yaml:"event_log"`
	Devices  []DeviceConfig `yaml:"devices"`
}

// ---- AMBIENT ----

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty = disabled
}

type EventLogConfig struct {
	Path string `yaml:"path"` // CBOR event stream; empty = disabled
}

// ---- DEVICE ----

type DeviceConfig struct {
	ID         string          `yaml:"id"`
	DeviceName string          `yaml:"device_name"`
	Transport  TransportConfig `yaml:"transport"`
	Poll       PollConfig      `yaml:"poll"`
	Targets    []TargetConfig  `yaml:"targets"`
}

// ---- TRANSPORT ----

const (
	TransportSGIO   = "sgio"
	TransportReplay = "replay"
)

type TransportConfig struct {
	Kind      string `yaml:"kind"` // sgio | replay
	Path      string `yaml:"path"` // block device or capture file
	TimeoutMs int    `yaml:"timeout_ms"`

	// Status forces a transport status (replay only).
	Status uint8 `yaml:"status"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- TARGET (status memory) ----

const (
	ProtocolModbus = "modbus"
	ProtocolIngest = "ingest"
)

type TargetConfig struct {
	Endpoint   string  `yaml:"endpoint"`
	Protocol   string  `yaml:"protocol"` // modbus | ingest
	UnitID     uint8   `yaml:"unit_id"`
	StatusSlot *uint16 `yaml:"status_slot"`
	TimeoutMs  int     `yaml:"timeout_ms"`
}
