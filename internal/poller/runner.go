// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits PollResult on the provided channel.
// One goroutine per device. No overlap. No retries.
// The first cycle runs immediately; discovery intervals are long.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	defer p.Close()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case out <- p.PollOnce():
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
