// internal/discovery/helpers_test.go
package discovery

import "encoding/binary"

// ---- response builder ----

type record struct {
	code uint16
	body []byte
}

// response lays out a revision 1 header followed by recs in a BlockSize buffer.
// length is written verbatim into the header length field.
func response(length uint32, recs ...record) []byte {
	buf := make([]byte, BlockSize)
	binary.BigEndian.PutUint32(buf[0:4], length)
	binary.BigEndian.PutUint32(buf[4:8], 1)

	cur := defaultPreambleSize
	for _, r := range recs {
		binary.BigEndian.PutUint16(buf[cur:cur+2], r.code)
		buf[cur+2] = 0x10 // version 1
		buf[cur+3] = byte(len(r.body))
		copy(buf[cur+4:], r.body)
		cur += 4 + len(r.body)
	}
	return buf
}

// wellFormed builds a response whose header length covers exactly recs.
func wellFormed(recs ...record) []byte {
	total := defaultPreambleSize
	for _, r := range recs {
		total += 4 + len(r.body)
	}
	return response(uint32(total), recs...)
}

func be16(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }
func be32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }
func be64(v uint64) []byte { return binary.BigEndian.AppendUint64(nil, v) }

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func pad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	return append(b, make([]byte, n-len(b))...)
}

// ---- records of a typical Opal 2.0 drive ----

func tperRecord(flags byte) record {
	return record{code: uint16(FeatureTPer), body: pad([]byte{flags}, 12)}
}

func lockingRecord(flags byte) record {
	return record{code: uint16(FeatureLocking), body: pad([]byte{flags}, 12)}
}

func geometryRecord() record {
	return record{code: uint16(FeatureGeometry), body: cat(
		[]byte{0x01}, make([]byte, 7),
		be32(512),
		be64(8),
		be64(0),
	)}
}

func enterpriseRecord() record {
	return record{code: uint16(FeatureEnterprise), body: pad(cat(
		be16(0x07fe),
		be16(10),
		[]byte{0x01},
	), 16)}
}

func singleUserRecord() record {
	return record{code: uint16(FeatureSingleUser), body: pad(cat(
		be32(9),
		[]byte{0x07},
	), 12)}
}

func dataStoreRecord() record {
	return record{code: uint16(FeatureDataStore), body: cat(
		be16(0),
		be16(10),
		be32(0x00a00000),
		be32(1),
	)}
}

func opal2Record(baseComID uint16) record {
	return record{code: uint16(FeatureOpal2), body: pad(cat(
		be16(baseComID),
		be16(1),
		[]byte{0x00},
		be16(4),
		be16(9),
		[]byte{0x00, 0xff},
	), 16)}
}

func allRecords() []record {
	return []record{
		tperRecord(0x5f),
		lockingRecord(0x3f),
		geometryRecord(),
		enterpriseRecord(),
		singleUserRecord(),
		dataStoreRecord(),
		opal2Record(0x1000),
	}
}

// ---- fake transport ----

type fakeTransport struct {
	resp   []byte
	status uint8
	err    error

	calls    int
	protocol uint8
	comID    uint16
	bufLen   int
}

func (f *fakeTransport) ReadResponse(protocol uint8, comID uint16, buf []byte) (uint8, error) {
	f.calls++
	f.protocol = protocol
	f.comID = comID
	f.bufLen = len(buf)
	copy(buf, f.resp)
	return f.status, f.err
}

// ---- recording observer ----

type recorder struct {
	events []Event
}

func (r *recorder) Observe(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}
