// internal/status/snapshot.go
package status

import "github.com/tamzrod/sedscan/internal/discovery"

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Present         uint16
	Families        uint16
	TPerFlags       uint16
	LockingFlags    uint16
	BaseComID       uint16
	NumComIDs       uint16
	UnknownFeatures uint16
}

// WithCapabilities returns s with the capability slots taken from c.
// A nil c clears them (device not present).
func (s Snapshot) WithCapabilities(c *discovery.Capabilities) Snapshot {
	s.Present = 0
	s.Families = 0
	s.TPerFlags = 0
	s.LockingFlags = 0
	s.BaseComID = 0
	s.NumComIDs = 0
	s.UnknownFeatures = 0

	if !c.IsPresent() {
		return s
	}

	s.Present = 1
	s.Families = familyBits(c)
	s.TPerFlags = tperBits(c.TPer)
	s.LockingFlags = lockingBits(c.Locking)
	s.BaseComID = c.BaseComID()
	if c.SupportsOpal2() {
		s.NumComIDs = c.Opal2.NumComIDs
	}

	s.UnknownFeatures = 0xFFFF
	if c.Unknown < 0xFFFF {
		s.UnknownFeatures = uint16(c.Unknown)
	}
	return s
}

func familyBits(c *discovery.Capabilities) uint16 {
	var v uint16
	for _, code := range discovery.Families {
		if c.Supports(code) {
			v |= FamilyBit(code)
		}
	}
	return v
}

func tperBits(t discovery.TPer) uint16 {
	var v uint16
	if t.Sync {
		v |= TPerSync
	}
	if t.Async {
		v |= TPerAsync
	}
	if t.ACKNAK {
		v |= TPerACKNAK
	}
	if t.BufferMgmt {
		v |= TPerBufferMgmt
	}
	if t.Streaming {
		v |= TPerStreaming
	}
	if t.ComIDMgmt {
		v |= TPerComIDMgmt
	}
	return v
}

func lockingBits(l discovery.Locking) uint16 {
	var v uint16
	if l.LockingSupported {
		v |= LockingSupported
	}
	if l.LockingEnabled {
		v |= LockingEnabled
	}
	if l.Locked {
		v |= LockingLocked
	}
	if l.MediaEncryption {
		v |= LockingMediaEncryption
	}
	if l.MBREnabled {
		v |= LockingMBREnabled
	}
	if l.MBRDone {
		v |= LockingMBRDone
	}
	return v
}
