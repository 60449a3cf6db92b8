// internal/eventlog/file.go
package eventlog

import (
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// FileObserver appends discovery events to a CBOR record stream.
// It is safe for concurrent use from several pollers.
type FileObserver struct {
	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool
	now     func() time.Time
}

// NewFileObserver opens path for appending, creating it with mode 0644.
func NewFileObserver(path string) (*FileObserver, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileObserver{
		file:    f,
		encoder: NewEncoder(f),
		now:     time.Now,
	}, nil
}

// Observe writes ev. Encoding errors are dropped; the decode path never blocks on logging.
func (o *FileObserver) Observe(ev discovery.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	_ = o.encoder.Encode(NewRecord(o.now(), ev))
}

// Close closes the file. Later events are ignored. Safe to call twice.
func (o *FileObserver) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true
	return o.file.Close()
}

var _ discovery.Observer = (*FileObserver)(nil)
