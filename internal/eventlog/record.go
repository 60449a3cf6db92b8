// internal/eventlog/record.go
package eventlog

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// Record is one discovery event as stored on disk.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	Timestamp time.Time `cbor:"1,keyasint"`
	Kind      string    `cbor:"2,keyasint"`
	DeviceID  string    `cbor:"3,keyasint,omitempty"`
	Code      uint16    `cbor:"4,keyasint,omitempty"`
	Revision  uint32    `cbor:"5,keyasint,omitempty"`
	Offset    int       `cbor:"6,keyasint,omitempty"`
	Unknown   uint32    `cbor:"7,keyasint,omitempty"`
	Error     string    `cbor:"8,keyasint,omitempty"`
}

// NewRecord converts a decoder event into its stored form.
func NewRecord(at time.Time, ev discovery.Event) Record {
	r := Record{
		Timestamp: at,
		Kind:      ev.Kind.String(),
		DeviceID:  ev.DeviceID,
		Code:      uint16(ev.Code),
		Revision:  ev.Revision,
		Offset:    ev.Offset,
		Unknown:   ev.Unknown,
	}
	if ev.Err != nil {
		r.Error = ev.Err.Error()
	}
	return r
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("eventlog: encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("eventlog: decoder mode: %v", err))
	}
}

// NewEncoder creates a record encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a record decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
