// internal/discovery/constants.go
package discovery

import "fmt"

// Level 0 Discovery wire constants.
// These values are fixed by the TCG storage protocol and MUST NOT be configurable.

// ---- TRANSPORT REQUEST ----

// BlockSize is the fixed response buffer size requested from the transport.
const BlockSize = 4096

// ProtocolDiscovery is the security protocol used for Level 0 Discovery.
const ProtocolDiscovery uint8 = 0x01

// ComIDDiscovery is the comID (protocol specific parameter) for Level 0 Discovery.
const ComIDDiscovery uint16 = 0x0001

// ---- HEADER GEOMETRY ----

// headerFixedSize covers the length and revision fields.
const headerFixedSize = 8

// defaultPreambleSize is the header size of the only layout seen in the field.
const defaultPreambleSize = 48

// preambleSizes maps the data structure revision to the header size.
// Only revision 1 is defined.
var preambleSizes = map[uint32]int{
	0x00000001: defaultPreambleSize,
}

// preambleSize returns the header size for a revision.
// Unknown revisions keep the revision 1 layout; ok reports whether it was known.
func preambleSize(revision uint32) (size int, ok bool) {
	if n, found := preambleSizes[revision]; found {
		return n, true
	}
	return defaultPreambleSize, false
}

// ---- FEATURE RECORDS ----

// recordHeaderSize is code(2) + version(1) + length(1).
const recordHeaderSize = 4

// FeatureCode identifies one feature family in the discovery response.
type FeatureCode uint16

const (
	FeatureTPer       FeatureCode = 0x0001
	FeatureLocking    FeatureCode = 0x0002
	FeatureGeometry   FeatureCode = 0x0003
	FeatureEnterprise FeatureCode = 0x0100
	FeatureSingleUser FeatureCode = 0x0201
	FeatureDataStore  FeatureCode = 0x0202
	FeatureOpal2      FeatureCode = 0x0203
)

// Families lists the recognized feature codes in report order.
var Families = []FeatureCode{
	FeatureTPer,
	FeatureLocking,
	FeatureGeometry,
	FeatureEnterprise,
	FeatureSingleUser,
	FeatureDataStore,
	FeatureOpal2,
}

func (c FeatureCode) String() string {
	switch c {
	case FeatureTPer:
		return "TPer"
	case FeatureLocking:
		return "Locking"
	case FeatureGeometry:
		return "Geometry"
	case FeatureEnterprise:
		return "Enterprise"
	case FeatureSingleUser:
		return "SingleUser"
	case FeatureDataStore:
		return "DataStore"
	case FeatureOpal2:
		return "OPAL 2.0"
	default:
		return "Unknown"
	}
}

// Hex returns the code as it appears in reports, e.g. "0x0203".
func (c FeatureCode) Hex() string {
	return fmt.Sprintf("0x%04x", uint16(c))
}
