// internal/discovery/observer.go
package discovery

// EventKind identifies a point in the decode path.
type EventKind uint8

const (
	EventDecodeStart EventKind = iota + 1
	EventUnknownFeature
	EventUnknownRevision
	EventDecodeFailed
	EventDecodeDone
)

func (k EventKind) String() string {
	switch k {
	case EventDecodeStart:
		return "decode_start"
	case EventUnknownFeature:
		return "unknown_feature"
	case EventUnknownRevision:
		return "unknown_revision"
	case EventDecodeFailed:
		return "decode_failed"
	case EventDecodeDone:
		return "decode_done"
	default:
		return "unknown"
	}
}

// Event is what the decoder reports to an Observer.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	DeviceID string

	Code     FeatureCode // EventUnknownFeature
	Revision uint32      // EventUnknownRevision
	Offset   int         // EventUnknownFeature, EventDecodeFailed
	Unknown  uint32      // EventDecodeDone
	Err      error       // EventDecodeFailed
}

// Observer receives decode events. Implementations must not block for long
// and must be safe for use from several pollers at once.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Observe(Event) {}

// MultiObserver fans out events in order. Nil entries are skipped.
type MultiObserver []Observer

func (m MultiObserver) Observe(ev Event) {
	for _, o := range m {
		if o != nil {
			o.Observe(ev)
		}
	}
}

var (
	_ Observer = ObserverFunc(nil)
	_ Observer = NopObserver{}
	_ Observer = MultiObserver(nil)
)
