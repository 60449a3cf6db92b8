// cmd/sedscan/commands/run.go
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/sedscan/internal/config"
	"github.com/tamzrod/sedscan/internal/discovery"
	"github.com/tamzrod/sedscan/internal/eventlog"
	"github.com/tamzrod/sedscan/internal/metrics"
	"github.com/tamzrod/sedscan/internal/poller"
	"github.com/tamzrod/sedscan/internal/writer"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Poll configured drives and publish their status blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}

			log := newLogger(cfg.Sedscan.Logging, cmd.ErrOrStderr())
			slog.SetDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runDaemon(ctx, cfg, log)
		},
	}
}

// runDaemon builds one poller and one orchestrator per device and blocks until ctx ends.
func runDaemon(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	observers := discovery.MultiObserver{eventlog.NewSlogObserver(log)}

	// --------------------
	// Event log
	// --------------------
	if path := cfg.Sedscan.EventLog.Path; path != "" {
		fo, err := eventlog.NewFileObserver(path)
		if err != nil {
			return fmt.Errorf("event log: %w", err)
		}
		defer fo.Close()
		observers = append(observers, fo)
	}

	var closers []func() error
	defer func() {
		for _, fn := range closers {
			_ = fn()
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// --------------------
	// Metrics
	// --------------------
	var m *metrics.Metrics
	if addr := cfg.Sedscan.Metrics.Listen; addr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		observers = append(observers, m)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := metrics.Serve(ctx, addr, reg); err != nil {
				log.Error("metrics server stopped", "err", err)
			}
		}()
		log.Info("metrics listening", "addr", addr)
	}

	// --------------------
	// Build per-device pipelines
	// --------------------
	for _, d := range cfg.Sedscan.Devices {

		// ---- poller ----
		p, err := poller.Build(d, observers)
		if err != nil {
			return fmt.Errorf("poller build failed (device=%s): %w", d.ID, err)
		}

		// ---- writer plan ----
		plan, err := writer.BuildPlan(d)
		if err != nil {
			return fmt.Errorf("writer plan failed (device=%s): %w", d.ID, err)
		}

		// ---- writer clients ----
		clients, closeWriters, err := writer.BuildEndpointClients(d)
		if err != nil {
			return fmt.Errorf("writer clients failed (device=%s): %w", d.ID, err)
		}
		closers = append(closers, closeWriters)

		w := writer.New(plan, clients)

		// ---- channel between poller and orchestrator ----
		out := make(chan poller.PollResult)

		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			secTicker := time.NewTicker(time.Second)
			defer secTicker.Stop()
			orchestrate(ctx, id, out, secTicker.C, w, m, log)
		}(d.ID)

		go func() {
			defer wg.Done()
			p.Run(ctx, out)
		}()

		log.Info("device started",
			"device", d.ID,
			"transport", d.Transport.Kind,
			"path", d.Transport.Path,
			"targets", len(d.Targets),
		)
	}

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}
