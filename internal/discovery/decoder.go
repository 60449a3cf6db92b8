// internal/discovery/decoder.go
package discovery

import (
	"encoding/binary"
	"errors"
)

// Transport is the receive side of a drive's security protocol interface.
// The transport fills buf in place. A zero status means success; on any
// nonzero status or error the buffer content is ignored.
type Transport interface {
	ReadResponse(protocol uint8, comID uint16, buf []byte) (status uint8, err error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(protocol uint8, comID uint16, buf []byte) (uint8, error)

func (f TransportFunc) ReadResponse(protocol uint8, comID uint16, buf []byte) (uint8, error) {
	return f(protocol, comID, buf)
}

// Option configures one decode call.
type Option func(*decoder)

// WithObserver sets the event observer. Nil keeps the default no-op observer.
func WithObserver(o Observer) Option {
	return func(d *decoder) {
		if o != nil {
			d.obs = o
		}
	}
}

// WithDeviceID tags emitted events with a device id.
func WithDeviceID(id string) Option {
	return func(d *decoder) { d.deviceID = id }
}

type decoder struct {
	obs      Observer
	deviceID string
}

func newDecoder(opts []Option) *decoder {
	d := &decoder{obs: NopObserver{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Decode issues one Level 0 Discovery read through tr and decodes the reply.
// All-or-nothing: on any failure no model is returned.
func Decode(tr Transport, opts ...Option) (*Capabilities, error) {
	d := newDecoder(opts)
	d.emit(Event{Kind: EventDecodeStart})

	caps, err := d.read(tr)
	return d.finish(caps, err)
}

// Parse decodes an already received discovery response.
func Parse(buf []byte, opts ...Option) (*Capabilities, error) {
	d := newDecoder(opts)
	d.emit(Event{Kind: EventDecodeStart})

	caps, err := d.parse(buf)
	return d.finish(caps, err)
}

func (d *decoder) finish(caps *Capabilities, err error) (*Capabilities, error) {
	if err != nil {
		ev := Event{Kind: EventDecodeFailed, Err: err}
		var de *DecodeError
		if errors.As(err, &de) {
			ev.Offset = de.Offset
		}
		d.emit(ev)
		return nil, err
	}
	d.emit(Event{Kind: EventDecodeDone, Unknown: caps.Unknown})
	return caps, nil
}

func (d *decoder) emit(ev Event) {
	ev.DeviceID = d.deviceID
	d.obs.Observe(ev)
}

func (d *decoder) read(tr Transport) (*Capabilities, error) {
	if tr == nil {
		return nil, &DecodeError{Kind: ErrTransportFailure, Err: errors.New("no transport")}
	}

	// Scoped to this call; never retained by the model.
	buf := make([]byte, BlockSize)

	status, err := tr.ReadResponse(ProtocolDiscovery, ComIDDiscovery, buf)
	if err != nil || status != 0 {
		return nil, &DecodeError{Kind: ErrTransportFailure, Status: status, Err: err}
	}

	return d.parse(buf)
}

// parse walks the header and the feature records of buf.
//
// Layout (big-endian):
//
//	0..3   total valid length of the response, header included
//	4..7   data structure revision
//	8..    reserved / vendor specific, up to the preamble size
//	then   records: code(2) version(1) length(1) body(length)
func (d *decoder) parse(buf []byte) (*Capabilities, error) {
	if len(buf) < headerFixedSize {
		return nil, malformed(0, "response of %d bytes is shorter than the %d byte header", len(buf), headerFixedSize)
	}

	hdr := Header{
		Length:   binary.BigEndian.Uint32(buf[0:4]),
		Revision: binary.BigEndian.Uint32(buf[4:8]),
	}

	preamble, known := preambleSize(hdr.Revision)
	if !known {
		d.emit(Event{Kind: EventUnknownRevision, Revision: hdr.Revision})
	}

	if uint64(hdr.Length) > uint64(len(buf)) {
		return nil, malformed(0, "declared length %d exceeds buffer capacity %d", hdr.Length, len(buf))
	}

	// A region that ends inside the preamble holds no records.
	end := min(int(hdr.Length), len(buf))
	caps := &Capabilities{Header: hdr}

	for cur := preamble; cur < end; {
		if end-cur < recordHeaderSize {
			return nil, truncated(cur, "%d bytes left for a %d byte record header", end-cur, recordHeaderSize)
		}

		code := FeatureCode(binary.BigEndian.Uint16(buf[cur : cur+2]))
		bodyLen := int(buf[cur+3])

		next := cur + recordHeaderSize + bodyLen
		if next > end {
			return nil, truncated(cur, "feature 0x%04x body of %d bytes ends at %d, past %d", uint16(code), bodyLen, next, end)
		}

		if !caps.apply(code, body(buf[cur+recordHeaderSize:next])) {
			caps.Unknown++
			d.emit(Event{Kind: EventUnknownFeature, Code: code, Offset: cur})
		}

		// next >= cur+4, so the walk always terminates.
		cur = next
	}

	caps.present = true
	return caps, nil
}
