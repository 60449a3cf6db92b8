// cmd/sedscan/commands/orchestrator.go
package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/sedscan/internal/metrics"
	"github.com/tamzrod/sedscan/internal/poller"
	"github.com/tamzrod/sedscan/internal/status"
	"github.com/tamzrod/sedscan/internal/writer"
)

// orchestrate owns the status snapshot of one device.
// It folds poll results into the snapshot and counts seconds in error on tick.
// Runner-owned state: nothing else touches snap.
func orchestrate(
	ctx context.Context,
	deviceID string,
	in <-chan poller.PollResult,
	tick <-chan time.Time,
	w writer.Writer,
	m *metrics.Metrics,
	log *slog.Logger,
) {
	// Default snapshot state on start.
	snap := status.Snapshot{Health: status.HealthUnknown}

	deliver := func(reason string) {
		err := w.WriteStatus(snap)
		m.RecordStatusWrite(deviceID, err)
		if err != nil {
			log.Warn("status write failed", "device", deviceID, "reason", reason, "err", err)
		}
	}

	// Full block write on start (identity re-assert).
	deliver("start")

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			next := snap
			if res.Err == nil {
				// Recovery / OK
				next.Health = status.HealthOK
				next.LastErrorCode = 0
				next.SecondsInError = 0
				next = next.WithCapabilities(res.Capabilities)
			} else {
				next.Health = status.HealthError
				next.LastErrorCode = errorCode(res.Err)
				next = next.WithCapabilities(nil)
				// seconds_in_error increments on the 1Hz ticker only.
			}

			if next != snap {
				if next.Health != snap.Health {
					log.Info("device health changed",
						"device", deviceID,
						"health", healthName(next.Health),
						"code", next.LastErrorCode,
					)
				}
				snap = next
				deliver("poll")
			}

		case <-tick:
			// Tick 1 Hz while not OK.
			if snap.Health != status.HealthOK && snap.SecondsInError < 65535 {
				snap.SecondsInError++
				deliver("tick")
			}
		}
	}
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return 1
}

func healthName(h uint16) string {
	switch h {
	case status.HealthOK:
		return "ok"
	case status.HealthError:
		return "error"
	default:
		return "unknown"
	}
}
