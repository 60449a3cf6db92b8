// cmd/sedscan/commands/discover.go
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sedscan/internal/config"
	"github.com/tamzrod/sedscan/internal/discovery"
	"github.com/tamzrod/sedscan/internal/eventlog"
	"github.com/tamzrod/sedscan/internal/poller"
)

func newDiscoverCmd() *cobra.Command {
	var (
		replayPath string
		status     uint8
		timeout    time.Duration
		savePath   string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "discover [device]",
		Short: "Run one Level 0 Discovery and print the capability report",
		Example: `  sedscan discover /dev/sda
  sedscan discover /dev/sda --save sda.bin
  sedscan discover --replay sda.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := config.TransportConfig{Kind: config.TransportReplay, Path: replayPath, Status: status}
			switch {
			case replayPath != "" && len(args) > 0:
				return errors.New("give either a device or --replay, not both")
			case replayPath == "" && len(args) == 0:
				return errors.New("device or --replay required")
			case replayPath == "":
				tc = config.TransportConfig{
					Kind:      config.TransportSGIO,
					Path:      args[0],
					TimeoutMs: int(timeout.Milliseconds()),
				}
			}

			factory, err := poller.NewFactory(tc)
			if err != nil {
				return err
			}
			tr, err := factory()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "capability discovery failed: %v\n", err)
				return ErrReported
			}
			defer tr.Close()

			var obs discovery.Observer = discovery.NopObserver{}
			if verbose {
				log := newLogger(config.LoggingConfig{Level: "debug"}, cmd.ErrOrStderr())
				obs = eventlog.NewSlogObserver(log)
			}

			capt := &captureTransport{Transport: tr}
			if err := discover(cmd.OutOrStdout(), capt, obs); err != nil {
				return err
			}

			if savePath != "" {
				if err := os.WriteFile(savePath, capt.data, 0o644); err != nil {
					return fmt.Errorf("save capture: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved %d bytes to %s\n", len(capt.data), savePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&replayPath, "replay", "", "decode a captured response file instead of a device")
	cmd.Flags().Uint8Var(&status, "status", 0, "transport status to force (with --replay)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "SG_IO command timeout")
	cmd.Flags().StringVar(&savePath, "save", "", "write the raw response to a file for later --replay")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log decode events to stderr")

	return cmd
}

// discover decodes one response through tr and writes the report to w.
func discover(w io.Writer, tr discovery.Transport, obs discovery.Observer) error {
	caps, err := discovery.Decode(tr, discovery.WithObserver(obs))
	if err != nil {
		fmt.Fprintf(w, "capability discovery failed: %v\n", err)
		return ErrReported
	}
	return discovery.WriteReport(w, caps)
}

// captureTransport keeps a copy of the last successful response.
type captureTransport struct {
	discovery.Transport
	data []byte
}

func (c *captureTransport) ReadResponse(protocol uint8, comID uint16, buf []byte) (uint8, error) {
	st, err := c.Transport.ReadResponse(protocol, comID, buf)
	if err == nil && st == 0 {
		c.data = append(c.data[:0], buf...)
	}
	return st, err
}
