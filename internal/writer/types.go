// internal/writer/types.go
package writer

import "github.com/tamzrod/sedscan/internal/status"

// TargetPlan is one status memory destination for a device.
type TargetPlan struct {
	Endpoint string
	Protocol string // modbus | ingest
	UnitID   uint8
	BaseSlot uint16 // block index; register address = BaseSlot * SlotsPerDevice
}

// Plan is the fully-built write plan for one device.
type Plan struct {
	DeviceID   string
	DeviceName string
	Targets    []TargetPlan
}

// Writer delivers a device status snapshot to every target of the device.
type Writer interface {
	WriteStatus(s status.Snapshot) error
}
