// internal/discovery/model.go
package discovery

// Header is the decoded Level 0 Discovery header.
type Header struct {
	Length   uint32 // total valid length of the response, header included
	Revision uint32 // data structure revision
}

// TPer is the Trusted Peripheral core feature (0x0001).
type TPer struct {
	Supported  bool
	ACKNAK     bool
	Async      bool
	BufferMgmt bool
	ComIDMgmt  bool
	Streaming  bool
	Sync       bool
}

// Locking is the Locking feature (0x0002).
type Locking struct {
	Supported        bool
	Locked           bool
	LockingEnabled   bool
	LockingSupported bool
	MBRDone          bool
	MBREnabled       bool
	MediaEncryption  bool
}

// Geometry is the Geometry Reporting feature (0x0003).
type Geometry struct {
	Supported            bool
	Align                bool
	AlignmentGranularity uint64
	LogicalBlockSize     uint32
	LowestAlignedLBA     uint64
}

// Enterprise is the Enterprise SSC feature (0x0100).
type Enterprise struct {
	Supported     bool
	RangeCrossing bool
	BaseComID     uint16
	NumComIDs     uint16
}

// SingleUser is the Single User Mode feature (0x0201).
type SingleUser struct {
	Supported      bool
	All            bool
	Any            bool
	Policy         bool
	LockingObjects uint32
}

// DataStore is the DataStore Table feature (0x0202).
type DataStore struct {
	Supported    bool
	MaxTables    uint16
	MaxTableSize uint32
	Alignment    uint32
}

// Opal2 is the Opal 2.0 SSC feature (0x0203).
type Opal2 struct {
	Supported     bool
	BaseComID     uint16
	InitialPIN    uint8
	RevertedPIN   uint8
	NumComIDs     uint16
	NumAdmins     uint16
	NumUsers      uint16
	RangeCrossing bool
}

// Capabilities is the decoded capability model of one drive.
// The zero value means "nothing supported". A model is filled by exactly one
// decode pass and is read-only afterwards; copy it freely.
type Capabilities struct {
	Header Header

	TPer       TPer
	Locking    Locking
	Geometry   Geometry
	Enterprise Enterprise
	SingleUser SingleUser
	DataStore  DataStore
	Opal2      Opal2

	// Unknown counts feature records with unrecognized codes.
	Unknown uint32

	present bool
}

// SupportsOpal2 reports whether the Opal 2.0 SSC feature was returned.
func (c *Capabilities) SupportsOpal2() bool {
	return c != nil && c.Opal2.Supported
}

// IsPresent reports whether this model came out of a completed decode.
func (c *Capabilities) IsPresent() bool {
	return c != nil && c.present
}

// BaseComID returns the Opal 2.0 base comID, or 0 when Opal 2.0 is absent.
func (c *Capabilities) BaseComID() uint16 {
	if !c.SupportsOpal2() {
		return 0
	}
	return c.Opal2.BaseComID
}

// Supports reports whether the family with the given code was returned.
func (c *Capabilities) Supports(code FeatureCode) bool {
	if c == nil {
		return false
	}
	switch code {
	case FeatureTPer:
		return c.TPer.Supported
	case FeatureLocking:
		return c.Locking.Supported
	case FeatureGeometry:
		return c.Geometry.Supported
	case FeatureEnterprise:
		return c.Enterprise.Supported
	case FeatureSingleUser:
		return c.SingleUser.Supported
	case FeatureDataStore:
		return c.DataStore.Supported
	case FeatureOpal2:
		return c.Opal2.Supported
	default:
		return false
	}
}
