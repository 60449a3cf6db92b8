//go:build linux

// internal/poller/sgio/sgio_linux.go
package sgio

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// <scsi/sg.h>
const (
	ioctlSGIO        = 0x2285
	sgInterfaceID    = 'S'
	sgDxferFromDev   = -3
	driverStatusMask = 0x0f
)

// sgIOHdr mirrors struct sg_io_hdr.
type sgIOHdr struct {
	interfaceID    int32
	dxferDirection int32
	cmdLen         uint8
	mxSbLen        uint8
	iovecCount     uint16
	dxferLen       uint32
	dxferp         *byte
	cmdp           *byte
	sbp            *byte
	timeout        uint32 // milliseconds
	flags          uint32
	packID         int32
	usrPtr         uintptr
	status         uint8
	maskedStatus   uint8
	msgStatus      uint8
	sbLenWr        uint8
	hostStatus     uint16
	driverStatus   uint16
	resid          int32
	duration       uint32
	info           uint32
}

// Transport issues SECURITY PROTOCOL IN through the Linux SG_IO ioctl.
type Transport struct {
	mu      sync.Mutex
	fd      int
	path    string
	timeout uint32
}

// Open opens the device node. The caller owns the returned transport.
func Open(cfg Config) (*Transport, error) {
	if cfg.Path == "" {
		return nil, errors.New("sgio: path required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	fd, err := unix.Open(cfg.Path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("sgio: open %s: %w", cfg.Path, err)
	}

	return &Transport{
		fd:      fd,
		path:    cfg.Path,
		timeout: uint32(cfg.Timeout.Milliseconds()),
	}, nil
}

// ReadResponse implements discovery.Transport.
func (t *Transport) ReadResponse(protocol uint8, comID uint16, buf []byte) (uint8, error) {
	if len(buf) == 0 {
		return 0, errors.New("sgio: empty buffer")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fd < 0 {
		return 0, fmt.Errorf("sgio: %s: closed", t.path)
	}

	cdb := securityProtocolInCDB(protocol, comID, uint32(len(buf)))
	var sense [senseLen]byte

	hdr := sgIOHdr{
		interfaceID:    sgInterfaceID,
		dxferDirection: sgDxferFromDev,
		cmdLen:         cdbLen,
		mxSbLen:        senseLen,
		dxferLen:       uint32(len(buf)),
		dxferp:         &buf[0],
		cmdp:           &cdb[0],
		sbp:            &sense[0],
		timeout:        t.timeout,
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(t.fd), ioctlSGIO, uintptr(unsafe.Pointer(&hdr)))
	if errno != 0 {
		return 0, fmt.Errorf("sgio: %s: SG_IO: %w", t.path, errno)
	}

	if hdr.status != 0 {
		return hdr.status, nil
	}
	if hdr.hostStatus != 0 || hdr.driverStatus&driverStatusMask != 0 {
		return StatusHostError, nil
	}
	return 0, nil
}

// Close closes the device node.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fd < 0 {
		return nil
	}
	err := unix.Close(t.fd)
	t.fd = -1
	return err
}
