// internal/eventlog/eventlog_test.go
package eventlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/sedscan/internal/discovery"
)

func TestFileObserver_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	obs, err := NewFileObserver(path)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 5, time.UTC)
	obs.now = func() time.Time { return at }

	obs.Observe(discovery.Event{Kind: discovery.EventDecodeStart, DeviceID: "sda"})
	obs.Observe(discovery.Event{Kind: discovery.EventUnknownFeature, DeviceID: "sdb", Code: 0x1234, Offset: 64})
	obs.Observe(discovery.Event{Kind: discovery.EventDecodeFailed, DeviceID: "sda", Offset: 52, Err: errors.New("boom")})
	require.NoError(t, obs.Close())

	// ignored after close
	obs.Observe(discovery.Event{Kind: discovery.EventDecodeDone})
	require.NoError(t, obs.Close())

	r, err := NewReader(path, "")
	require.NoError(t, err)
	defer r.Close()

	var got []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, rec)
	}

	require.Len(t, got, 3)
	assert.Equal(t, "decode_start", got[0].Kind)
	assert.True(t, at.Equal(got[0].Timestamp))
	assert.Equal(t, uint16(0x1234), got[1].Code)
	assert.Equal(t, 64, got[1].Offset)
	assert.Equal(t, "boom", got[2].Error)
}

func TestReader_FiltersByDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	obs, err := NewFileObserver(path)
	require.NoError(t, err)
	obs.Observe(discovery.Event{Kind: discovery.EventDecodeStart, DeviceID: "sda"})
	obs.Observe(discovery.Event{Kind: discovery.EventDecodeStart, DeviceID: "sdb"})
	obs.Observe(discovery.Event{Kind: discovery.EventDecodeDone, DeviceID: "sdb", Unknown: 2})
	require.NoError(t, obs.Close())

	r, err := NewReader(path, "sdb")
	require.NoError(t, err)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "sdb", first.DeviceID)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), second.Unknown)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSlogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogObserver(logger).Observe(discovery.Event{
		Kind:     discovery.EventUnknownFeature,
		DeviceID: "sda",
		Code:     0x0404,
		Offset:   80,
	})

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "DEBUG", m["level"])
	assert.Equal(t, "discovery", m["msg"])
	assert.Equal(t, "unknown_feature", m["event"])
	assert.Equal(t, "sda", m["device"])
	assert.Equal(t, "0x0404", m["code"])
	assert.Equal(t, float64(80), m["offset"])
}

func TestSlogObserver_FailureIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	obs := NewSlogObserver(logger)
	obs.Observe(discovery.Event{Kind: discovery.EventDecodeStart})
	assert.Zero(t, buf.Len(), "debug events filtered at info")

	obs.Observe(discovery.Event{Kind: discovery.EventDecodeFailed, Err: discovery.ErrTruncatedRecord})

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "WARN", m["level"])
	assert.Equal(t, "truncated feature record", m["err"])
}
