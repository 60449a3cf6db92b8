// internal/eventlog/reader.go
package eventlog

import (
	"errors"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Reader streams records from a file written by FileObserver.
type Reader struct {
	file     *os.File
	decoder  *cbor.Decoder
	deviceID string
}

// NewReader opens path. A non-empty deviceID keeps only that device's records.
func NewReader(path, deviceID string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:     f,
		decoder:  NewDecoder(f),
		deviceID: deviceID,
	}, nil
}

// Next returns the next matching record, or io.EOF.
func (r *Reader) Next() (Record, error) {
	for {
		var rec Record
		if err := r.decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, err
		}
		if r.deviceID == "" || rec.DeviceID == r.deviceID {
			return rec, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
