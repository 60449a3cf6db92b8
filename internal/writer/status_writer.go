// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sedscan/internal/status"
)

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter writes one device's status block into one target.
type deviceStatusWriter struct {
	target TargetPlan
	cli    EndpointClient

	needFull bool
	last     []uint16 // live slots as last delivered
	nameRegs []uint16
}

const statusAreaHoldingRegisters byte = 3

// liveSlots is the number of leading slots that follow the snapshot.
// Everything after it is reserved or device name, written on full assert only.
const liveSlots = status.SlotUnknownFeatures + 1

// NewDeviceStatusWriter builds the status writer for one target of a device.
func NewDeviceStatusWriter(t TargetPlan, deviceName string, cli EndpointClient) *deviceStatusWriter {
	return &deviceStatusWriter{
		target:   t,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: status.EncodeDeviceName(deviceName),
	}
}

// WriteStatus delivers a device status snapshot into status memory.
// On any write failure, the next call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.target.Endpoint)
	}

	regs := status.Encode(s)
	baseAddr := sw.baseAddr()
	unitID := sw.target.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)

		if err := sw.cli.WriteRegisters(
			statusAreaHoldingRegisters,
			unitID,
			baseAddr,
			regs,
		); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = append(sw.last[:0], regs[:liveSlots]...)
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per run of changed slots
	// ------------------------------------------------------------
	var errs []string

	for start := 0; start < liveSlots; {
		if sw.last[start] == regs[start] {
			start++
			continue
		}
		end := start + 1
		for end < liveSlots && sw.last[end] != regs[end] {
			end++
		}

		if err := sw.cli.WriteRegisters(
			statusAreaHoldingRegisters,
			unitID,
			baseAddr+uint16(start),
			regs[start:end],
		); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", start, end-1, err))
		} else {
			copy(sw.last[start:end], regs[start:end])
		}
		start = end
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.target.BaseSlot * status.SlotsPerDevice
}
