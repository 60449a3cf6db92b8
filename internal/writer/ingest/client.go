// internal/writer/ingest/client.go
package ingest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// Raw ingest v1 packet (big-endian):
//
//	0-1  magic "RI"
//	2    version (0x01)
//	3    area
//	4-5  unit id
//	6-7  address
//	8-9  count
//	10+  payload (count registers)
//
// The server answers with one status byte.
const (
	magic     = "RI"
	versionV1 = 0x01
	headerLen = 10

	respOK       byte = 0x00
	respRejected byte = 0x01
)

// ErrRejected is returned when the ingest server refuses a packet.
var ErrRejected = errors.New("writer ingest: rejected")

// EndpointClient speaks raw ingest v1 (stateless, 1 packet = 1 connection).
type EndpointClient struct {
	endpoint string
	timeout  time.Duration
	dial     func(network, addr string, timeout time.Duration) (net.Conn, error)
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer ingest: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &EndpointClient{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		dial:     net.DialTimeout,
	}, nil
}

func (c *EndpointClient) Close() error { return nil }

// WriteRegisters implements writer.EndpointClient.
func (c *EndpointClient) WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) > 0xFFFF {
		return fmt.Errorf("writer ingest: %d registers exceed packet limit", len(regs))
	}

	pkt := buildPacketV1(area, unitID, addr, regs)

	conn, err := c.dial("tcp", c.endpoint, c.timeout)
	if err != nil {
		return fmt.Errorf("writer ingest: dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err := conn.Write(pkt); err != nil {
		return fmt.Errorf("writer ingest: write: %w", err)
	}

	var resp [1]byte
	if _, err := io.ReadFull(conn, resp[:]); err != nil {
		return fmt.Errorf("writer ingest: read status: %w", err)
	}

	switch resp[0] {
	case respOK:
		return nil
	case respRejected:
		return ErrRejected
	default:
		return fmt.Errorf("writer ingest: unknown status 0x%02x", resp[0])
	}
}

func buildPacketV1(area byte, unitID uint8, addr uint16, regs []uint16) []byte {
	pkt := make([]byte, headerLen, headerLen+2*len(regs))

	copy(pkt[0:2], magic)
	pkt[2] = versionV1
	pkt[3] = area
	binary.BigEndian.PutUint16(pkt[4:6], uint16(unitID))
	binary.BigEndian.PutUint16(pkt[6:8], addr)
	binary.BigEndian.PutUint16(pkt[8:10], uint16(len(regs)))

	for _, r := range regs {
		pkt = binary.BigEndian.AppendUint16(pkt, r)
	}
	return pkt
}
