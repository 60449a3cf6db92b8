// internal/poller/replay/replay.go
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// Transport serves a captured discovery response.
// The capture is read once; every ReadResponse copies it into the caller's buffer.
type Transport struct {
	data   []byte
	status uint8
}

// Config is the minimal transport config.
type Config struct {
	Path string

	// Status is returned on every read instead of zero (fault injection).
	Status uint8
}

// Open loads the capture file.
func Open(cfg Config) (*Transport, error) {
	if cfg.Path == "" {
		return nil, errors.New("replay: path required")
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	if len(data) > discovery.BlockSize {
		return nil, fmt.Errorf("replay: %s: %d bytes exceeds %d", cfg.Path, len(data), discovery.BlockSize)
	}
	return New(data, cfg.Status), nil
}

// New builds a transport from an in-memory capture.
func New(data []byte, status uint8) *Transport {
	return &Transport{data: append([]byte(nil), data...), status: status}
}

// ReadResponse implements discovery.Transport.
// Bytes of buf past the capture are zeroed.
func (t *Transport) ReadResponse(protocol uint8, comID uint16, buf []byte) (uint8, error) {
	if protocol != discovery.ProtocolDiscovery || comID != discovery.ComIDDiscovery {
		return 0, fmt.Errorf("replay: unsupported protocol 0x%02x comID 0x%04x", protocol, comID)
	}
	if t.status != 0 {
		return t.status, nil
	}
	n := copy(buf, t.data)
	clear(buf[n:])
	return 0, nil
}

func (t *Transport) Close() error { return nil }
