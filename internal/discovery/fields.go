// internal/discovery/fields.go
package discovery

import "encoding/binary"

// body is one feature record body (bytes after the 4-byte record header).
// Every read checks off+n <= len(body). Fields the device did not return
// read as zero.
type body []byte

func (b body) has(off, n int) bool {
	return off >= 0 && n >= 0 && off+n <= len(b)
}

func (b body) u8(off int) uint8 {
	if !b.has(off, 1) {
		return 0
	}
	return b[off]
}

func (b body) u16(off int) uint16 {
	if !b.has(off, 2) {
		return 0
	}
	return binary.BigEndian.Uint16(b[off : off+2])
}

func (b body) u32(off int) uint32 {
	if !b.has(off, 4) {
		return 0
	}
	return binary.BigEndian.Uint32(b[off : off+4])
}

func (b body) u64(off int) uint64 {
	if !b.has(off, 8) {
		return 0
	}
	return binary.BigEndian.Uint64(b[off : off+8])
}

// bit extracts bit n (0 = LSB) of the byte at off by masking.
func (b body) bit(off int, n uint) bool {
	return b.u8(off)&(1<<n) != 0
}

// ---- per-family layouts (offsets relative to the body) ----

func decodeTPer(b body) TPer {
	return TPer{
		Supported:  true,
		Sync:       b.bit(0, 0),
		Async:      b.bit(0, 1),
		ACKNAK:     b.bit(0, 2),
		BufferMgmt: b.bit(0, 3),
		Streaming:  b.bit(0, 4),
		ComIDMgmt:  b.bit(0, 6),
	}
}

func decodeLocking(b body) Locking {
	return Locking{
		Supported:        true,
		LockingSupported: b.bit(0, 0),
		LockingEnabled:   b.bit(0, 1),
		Locked:           b.bit(0, 2),
		MediaEncryption:  b.bit(0, 3),
		MBREnabled:       b.bit(0, 4),
		MBRDone:          b.bit(0, 5),
	}
}

func decodeGeometry(b body) Geometry {
	// 0: align bit, 1..7 reserved
	return Geometry{
		Supported:            true,
		Align:                b.bit(0, 0),
		LogicalBlockSize:     b.u32(8),
		AlignmentGranularity: b.u64(12),
		LowestAlignedLBA:     b.u64(20),
	}
}

func decodeEnterprise(b body) Enterprise {
	return Enterprise{
		Supported:     true,
		BaseComID:     b.u16(0),
		NumComIDs:     b.u16(2),
		RangeCrossing: b.bit(4, 0),
	}
}

func decodeSingleUser(b body) SingleUser {
	return SingleUser{
		Supported:      true,
		LockingObjects: b.u32(0),
		Any:            b.bit(4, 0),
		All:            b.bit(4, 1),
		Policy:         b.bit(4, 2),
	}
}

func decodeDataStore(b body) DataStore {
	// 0..1 reserved
	return DataStore{
		Supported:    true,
		MaxTables:    b.u16(2),
		MaxTableSize: b.u32(4),
		Alignment:    b.u32(8),
	}
}

func decodeOpal2(b body) Opal2 {
	return Opal2{
		Supported:     true,
		BaseComID:     b.u16(0),
		NumComIDs:     b.u16(2),
		RangeCrossing: b.bit(4, 0),
		NumAdmins:     b.u16(5),
		NumUsers:      b.u16(7),
		InitialPIN:    b.u8(9),
		RevertedPIN:   b.u8(10),
	}
}

// apply fills the family for code. It returns false for unrecognized codes.
func (c *Capabilities) apply(code FeatureCode, b body) bool {
	switch code {
	case FeatureTPer:
		c.TPer = decodeTPer(b)
	case FeatureLocking:
		c.Locking = decodeLocking(b)
	case FeatureGeometry:
		c.Geometry = decodeGeometry(b)
	case FeatureEnterprise:
		c.Enterprise = decodeEnterprise(b)
	case FeatureSingleUser:
		c.SingleUser = decodeSingleUser(b)
	case FeatureDataStore:
		c.DataStore = decodeDataStore(b)
	case FeatureOpal2:
		c.Opal2 = decodeOpal2(b)
	default:
		return false
	}
	return true
}
