// internal/metrics/metrics_test.go
package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// value reads the current value of a counter or gauge.
func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}

func TestObserve_Success(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe(discovery.Event{Kind: discovery.EventDecodeStart, DeviceID: "sda"})
	m.Observe(discovery.Event{Kind: discovery.EventUnknownFeature, DeviceID: "sda"})
	m.Observe(discovery.Event{Kind: discovery.EventUnknownFeature, DeviceID: "sda"})
	m.Observe(discovery.Event{Kind: discovery.EventDecodeDone, DeviceID: "sda", Unknown: 2})

	assert.Equal(t, 1.0, value(t, m.DecodesTotal.WithLabelValues("sda", ResultOK)))
	assert.Equal(t, 2.0, value(t, m.UnknownFeaturesTotal.WithLabelValues("sda")))
	assert.Equal(t, 1.0, value(t, m.DevicePresent.WithLabelValues("sda")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, f := range families {
		if f.GetName() == "sedscan_decode_duration_seconds" {
			samples = f.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(1), samples)
}

func TestObserve_Failure(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe(discovery.Event{Kind: discovery.EventDecodeDone, DeviceID: "sda"})
	m.Observe(discovery.Event{
		Kind:     discovery.EventDecodeFailed,
		DeviceID: "sda",
		Err:      &discovery.DecodeError{Kind: discovery.ErrTruncatedRecord},
	})

	assert.Equal(t, 1.0, value(t, m.DecodesTotal.WithLabelValues("sda", ResultTruncated)))
	assert.Equal(t, 0.0, value(t, m.DevicePresent.WithLabelValues("sda")))
}

func TestResult(t *testing.T) {
	assert.Equal(t, ResultOK, Result(nil))
	assert.Equal(t, ResultTransport, Result(&discovery.DecodeError{Kind: discovery.ErrTransportFailure}))
	assert.Equal(t, ResultMalformedHeader, Result(&discovery.DecodeError{Kind: discovery.ErrMalformedHeader}))
	assert.Equal(t, ResultTruncated, Result(&discovery.DecodeError{Kind: discovery.ErrTruncatedRecord}))
	assert.Equal(t, ResultOther, Result(errors.New("x")))
}

func TestRecordStatusWrite(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordStatusWrite("sda", nil)
	m.RecordStatusWrite("sda", errors.New("down"))
	m.RecordStatusWrite("sda", errors.New("down"))

	assert.Equal(t, 1.0, value(t, m.StatusWritesTotal.WithLabelValues("sda", "ok")))
	assert.Equal(t, 2.0, value(t, m.StatusWritesTotal.WithLabelValues("sda", "error")))

	var nilMetrics *Metrics
	nilMetrics.RecordStatusWrite("sda", nil)
	nilMetrics.Observe(discovery.Event{Kind: discovery.EventDecodeDone})
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.now = func() time.Time { return time.Unix(0, 0) }
	m.Observe(discovery.Event{Kind: discovery.EventDecodeDone, DeviceID: "sda"})

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `sedscan_device_present{device="sda"} 1`))
}
