// internal/metrics/metrics.go
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// Decode results used as the "result" label.
const (
	ResultOK              = "ok"
	ResultTransport       = "transport_failure"
	ResultMalformedHeader = "malformed_header"
	ResultTruncated       = "truncated_record"
	ResultOther           = "other"
)

// Metrics tracks discovery and status delivery.
//
// All metrics use the sedscan_ prefix. Metrics implements discovery.Observer
// so it can sit next to the event log in a MultiObserver.
type Metrics struct {
	// DecodesTotal counts finished decodes by device and result
	DecodesTotal *prometheus.CounterVec

	// DecodeDuration tracks decode latency including the transport read
	DecodeDuration *prometheus.HistogramVec

	// UnknownFeaturesTotal counts skipped feature records by device
	UnknownFeaturesTotal *prometheus.CounterVec

	// DevicePresent is 1 while the last decode of a device succeeded
	DevicePresent *prometheus.GaugeVec

	// StatusWritesTotal counts status block deliveries by device and result
	StatusWritesTotal *prometheus.CounterVec

	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

// New creates the metrics and registers them with reg.
// Panics if registration fails (expected during initialization only).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DecodesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sedscan_decodes_total",
				Help: "Level 0 Discovery decodes by device and result",
			},
			[]string{"device", "result"},
		),
		DecodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sedscan_decode_duration_seconds",
				Help:    "Level 0 Discovery duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"device"},
		),
		UnknownFeaturesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sedscan_unknown_features_total",
				Help: "Feature records skipped because the code is not recognized",
			},
			[]string{"device"},
		),
		DevicePresent: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sedscan_device_present",
				Help: "1 when the last discovery of the device produced a model",
			},
			[]string{"device"},
		),
		StatusWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sedscan_status_writes_total",
				Help: "Status block deliveries by device and result",
			},
			[]string{"device", "result"}, // "ok", "error"
		),
		started: make(map[string]time.Time),
		now:     time.Now,
	}

	reg.MustRegister(
		m.DecodesTotal,
		m.DecodeDuration,
		m.UnknownFeaturesTotal,
		m.DevicePresent,
		m.StatusWritesTotal,
	)

	return m
}

// Observe implements discovery.Observer.
func (m *Metrics) Observe(ev discovery.Event) {
	if m == nil {
		return
	}

	switch ev.Kind {
	case discovery.EventDecodeStart:
		m.mu.Lock()
		m.started[ev.DeviceID] = m.now()
		m.mu.Unlock()

	case discovery.EventUnknownFeature:
		m.UnknownFeaturesTotal.WithLabelValues(ev.DeviceID).Inc()

	case discovery.EventDecodeDone:
		m.finish(ev.DeviceID, ResultOK)
		m.DevicePresent.WithLabelValues(ev.DeviceID).Set(1)

	case discovery.EventDecodeFailed:
		m.finish(ev.DeviceID, Result(ev.Err))
		m.DevicePresent.WithLabelValues(ev.DeviceID).Set(0)
	}
}

// RecordStatusWrite records one status delivery of a device.
func (m *Metrics) RecordStatusWrite(deviceID string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StatusWritesTotal.WithLabelValues(deviceID, result).Inc()
}

func (m *Metrics) finish(deviceID, result string) {
	m.DecodesTotal.WithLabelValues(deviceID, result).Inc()

	m.mu.Lock()
	start, ok := m.started[deviceID]
	delete(m.started, deviceID)
	m.mu.Unlock()

	if ok {
		m.DecodeDuration.WithLabelValues(deviceID).Observe(m.now().Sub(start).Seconds())
	}
}

// Result maps a decode error to its "result" label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, discovery.ErrTransportFailure):
		return ResultTransport
	case errors.Is(err, discovery.ErrMalformedHeader):
		return ResultMalformedHeader
	case errors.Is(err, discovery.ErrTruncatedRecord):
		return ResultTruncated
	default:
		return ResultOther
	}
}

var _ discovery.Observer = (*Metrics)(nil)
