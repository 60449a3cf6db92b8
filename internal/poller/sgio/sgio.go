// internal/poller/sgio/sgio.go
package sgio

import (
	"encoding/binary"
	"errors"
	"time"
)

// ErrNotSupported is returned by Open on platforms without SG_IO.
var ErrNotSupported = errors.New("sgio: not supported on this platform")

// StatusHostError is returned as transport status when the SCSI status is GOOD
// but the host adapter or the driver reported an error.
const StatusHostError uint8 = 0xFF

const (
	opSecurityProtocolIn = 0xA2
	cdbLen               = 12
	senseLen             = 32

	defaultTimeout = 5 * time.Second
)

// Config is the minimal transport config.
type Config struct {
	Path    string // block or sg device, e.g. /dev/sda
	Timeout time.Duration
}

// securityProtocolInCDB builds a SECURITY PROTOCOL IN command descriptor block.
//
//	0      opcode 0xA2
//	1      security protocol
//	2..3   security protocol specific (comID)
//	4      bit7 INC_512 (0: allocation length in bytes)
//	6..9   allocation length
//	11     control
func securityProtocolInCDB(protocol uint8, comID uint16, allocLen uint32) [cdbLen]byte {
	var cdb [cdbLen]byte
	cdb[0] = opSecurityProtocolIn
	cdb[1] = protocol
	binary.BigEndian.PutUint16(cdb[2:4], comID)
	binary.BigEndian.PutUint32(cdb[6:10], allocLen)
	return cdb
}
