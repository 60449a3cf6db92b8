// internal/eventlog/slog.go
package eventlog

import (
	"context"
	"log/slog"

	"github.com/tamzrod/sedscan/internal/discovery"
)

// SlogObserver writes discovery events to an slog.Logger.
// Failures go out at warn level; everything else at debug.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an observer writing to logger (slog.Default if nil).
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) Observe(ev discovery.Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{slog.String("event", ev.Kind.String())}

	if ev.DeviceID != "" {
		attrs = append(attrs, slog.String("device", ev.DeviceID))
	}

	switch ev.Kind {
	case discovery.EventUnknownFeature:
		attrs = append(attrs,
			slog.String("code", ev.Code.Hex()),
			slog.Int("offset", ev.Offset),
		)
	case discovery.EventUnknownRevision:
		attrs = append(attrs, slog.Uint64("revision", uint64(ev.Revision)))
	case discovery.EventDecodeFailed:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.Int("offset", ev.Offset),
			slog.Any("err", ev.Err),
		)
	case discovery.EventDecodeDone:
		attrs = append(attrs, slog.Uint64("unknown", uint64(ev.Unknown)))
	}

	o.logger.LogAttrs(context.Background(), level, "discovery", attrs...)
}

var _ discovery.Observer = (*SlogObserver)(nil)
