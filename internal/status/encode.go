// internal/status/encode.go
package status

import (
	"bytes"
	"fmt"
)

// Encode converts a Snapshot into a full capability status block.
// Layout is protocol-locked. Reserved and device name slots are left zero.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError

	regs[SlotPresent] = s.Present
	regs[SlotFamilies] = s.Families
	regs[SlotTPerFlags] = s.TPerFlags
	regs[SlotLockingFlags] = s.LockingFlags
	regs[SlotBaseComID] = s.BaseComID
	regs[SlotNumComIDs] = s.NumComIDs
	regs[SlotUnknownFeatures] = s.UnknownFeatures

	return regs
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 registers.
// Each register stores two ASCII bytes in big-endian order.
// Non-printable bytes are replaced with '?'.
func EncodeDeviceName(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

// Decode is the inverse of Encode plus EncodeDeviceName.
// regs must hold a full block.
func Decode(regs []uint16) (Snapshot, string, error) {
	if len(regs) != SlotsPerDevice {
		return Snapshot{}, "", fmt.Errorf("status: block has %d slots, want %d", len(regs), SlotsPerDevice)
	}

	s := Snapshot{
		Health:          regs[SlotHealthCode],
		LastErrorCode:   regs[SlotLastErrorCode],
		SecondsInError:  regs[SlotSecondsInError],
		Present:         regs[SlotPresent],
		Families:        regs[SlotFamilies],
		TPerFlags:       regs[SlotTPerFlags],
		LockingFlags:    regs[SlotLockingFlags],
		BaseComID:       regs[SlotBaseComID],
		NumComIDs:       regs[SlotNumComIDs],
		UnknownFeatures: regs[SlotUnknownFeatures],
	}

	return s, DecodeDeviceName(regs[SlotDeviceNameStart : SlotDeviceNameEnd+1]), nil
}

// DecodeDeviceName unpacks name registers, stopping at the first NUL.
func DecodeDeviceName(regs []uint16) string {
	b := make([]byte, 0, 2*len(regs))
	for _, r := range regs {
		b = append(b, byte(r>>8), byte(r))
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
