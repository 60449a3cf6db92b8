// internal/status/constants.go
package status

import "github.com/tamzrod/sedscan/internal/discovery"

// Capability Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the device health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last discovery error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the device has been in error.
const SlotSecondsInError = 2

// SlotPresent is 1 when the last discovery produced a model.
const SlotPresent = 3

// SlotFamilies holds one bit per supported feature family (see Family*).
const SlotFamilies = 4

// SlotTPerFlags holds the TPer capability bits (see TPer*).
const SlotTPerFlags = 5

// SlotLockingFlags holds the Locking capability bits (see Locking*).
const SlotLockingFlags = 6

// SlotBaseComID holds the Opal 2.0 base comID (0 when Opal 2.0 is absent).
const SlotBaseComID = 7

// SlotNumComIDs holds the Opal 2.0 number of comIDs.
const SlotNumComIDs = 8

// SlotUnknownFeatures holds the unknown feature count (saturating).
const SlotUnknownFeatures = 9

// ---- RESERVED RANGE ----

// Slot 10 is reserved for future use.
const SlotReservedStart = 10
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// Slot 19 is reserved.

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a device whose last discovery succeeded.
const HealthOK uint16 = 1

// HealthError represents a device whose last discovery failed.
const HealthError uint16 = 2

// ---- FAMILY BITS (SlotFamilies) ----

const (
	FamilyTPer       uint16 = 1 << 0
	FamilyLocking    uint16 = 1 << 1
	FamilyGeometry   uint16 = 1 << 2
	FamilyEnterprise uint16 = 1 << 3
	FamilySingleUser uint16 = 1 << 4
	FamilyDataStore  uint16 = 1 << 5
	FamilyOpal2      uint16 = 1 << 6
)

// FamilyBit returns the SlotFamilies bit for a feature code, 0 for unknown codes.
func FamilyBit(code discovery.FeatureCode) uint16 {
	switch code {
	case discovery.FeatureTPer:
		return FamilyTPer
	case discovery.FeatureLocking:
		return FamilyLocking
	case discovery.FeatureGeometry:
		return FamilyGeometry
	case discovery.FeatureEnterprise:
		return FamilyEnterprise
	case discovery.FeatureSingleUser:
		return FamilySingleUser
	case discovery.FeatureDataStore:
		return FamilyDataStore
	case discovery.FeatureOpal2:
		return FamilyOpal2
	default:
		return 0
	}
}

// ---- TPER BITS (SlotTPerFlags) ----

const (
	TPerSync       uint16 = 1 << 0
	TPerAsync      uint16 = 1 << 1
	TPerACKNAK     uint16 = 1 << 2
	TPerBufferMgmt uint16 = 1 << 3
	TPerStreaming  uint16 = 1 << 4
	TPerComIDMgmt  uint16 = 1 << 6
)

// ---- LOCKING BITS (SlotLockingFlags) ----

const (
	LockingSupported       uint16 = 1 << 0
	LockingEnabled         uint16 = 1 << 1
	LockingLocked          uint16 = 1 << 2
	LockingMediaEncryption uint16 = 1 << 3
	LockingMBREnabled      uint16 = 1 << 4
	LockingMBRDone         uint16 = 1 << 5
)
