//go:build !linux

// internal/poller/sgio/sgio_other.go
package sgio

// Transport is unavailable off Linux.
type Transport struct{}

// Open always fails with ErrNotSupported.
func Open(cfg Config) (*Transport, error) {
	return nil, ErrNotSupported
}

func (t *Transport) ReadResponse(protocol uint8, comID uint16, buf []byte) (uint8, error) {
	return 0, ErrNotSupported
}

func (t *Transport) Close() error { return nil }
