// cmd/sedscan/commands/orchestrator_test.go
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/sedscan/internal/discovery"
	"github.com/tamzrod/sedscan/internal/poller"
	"github.com/tamzrod/sedscan/internal/status"
)

type fakeWriter struct {
	mu    sync.Mutex
	snaps []status.Snapshot
	seen  chan struct{}
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{seen: make(chan struct{}, 16)}
}

func (f *fakeWriter) WriteStatus(s status.Snapshot) error {
	f.mu.Lock()
	f.snaps = append(f.snaps, s)
	f.mu.Unlock()
	f.seen <- struct{}{}
	return nil
}

func (f *fakeWriter) wait(t *testing.T) status.Snapshot {
	t.Helper()
	select {
	case <-f.seen:
	case <-time.After(2 * time.Second):
		t.Fatalf("no status write")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snaps[len(f.snaps)-1]
}

func TestOrchestrate(t *testing.T) {
	caps, err := discovery.Parse(opalCapture())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan poller.PollResult)
	tick := make(chan time.Time)
	w := newFakeWriter()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	go orchestrate(ctx, "sda", in, tick, w, nil, log)

	// start: full assert of the unknown state
	s := w.wait(t)
	assert.Equal(t, status.HealthUnknown, s.Health)

	// success publishes capabilities
	in <- poller.PollResult{DeviceID: "sda", Capabilities: caps}
	s = w.wait(t)
	assert.Equal(t, status.HealthOK, s.Health)
	assert.Equal(t, uint16(1), s.Present)
	assert.Equal(t, uint16(0x1000), s.BaseComID)

	// ticks while OK write nothing
	tick <- time.Now()

	// failure clears capabilities and sets the decode error code
	in <- poller.PollResult{DeviceID: "sda", Err: &discovery.DecodeError{Kind: discovery.ErrTruncatedRecord}}
	s = w.wait(t)
	assert.Equal(t, status.HealthError, s.Health)
	assert.Equal(t, discovery.CodeTruncatedRecord, s.LastErrorCode)
	assert.Equal(t, uint16(0), s.Present)

	// ticks count seconds in error
	tick <- time.Now()
	s = w.wait(t)
	assert.Equal(t, uint16(1), s.SecondsInError)

	// recovery resets the counters
	in <- poller.PollResult{DeviceID: "sda", Capabilities: caps}
	s = w.wait(t)
	assert.Equal(t, status.HealthOK, s.Health)
	assert.Equal(t, uint16(0), s.SecondsInError)
	assert.Equal(t, uint16(0), s.LastErrorCode)

	// identical result writes nothing
	in <- poller.PollResult{DeviceID: "sda", Capabilities: caps}
	select {
	case <-w.seen:
		t.Fatalf("unexpected write for unchanged snapshot")
	case <-time.After(50 * time.Millisecond):
	}
}

type codedErr struct{}

func (codedErr) Error() string     { return "coded" }
func (codedErr) ErrorCode() uint16 { return 77 }

func TestErrorCode(t *testing.T) {
	assert.Equal(t, uint16(0), errorCode(nil))
	assert.Equal(t, uint16(1), errorCode(errors.New("plain")))
	assert.Equal(t, uint16(77), errorCode(codedErr{}))
	assert.Equal(t,
		discovery.CodeTransportFailure|0x02,
		errorCode(&discovery.DecodeError{Kind: discovery.ErrTransportFailure, Status: 0x02}),
	)
}
