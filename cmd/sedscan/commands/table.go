// cmd/sedscan/commands/table.go
package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sedscan/internal/config"
	"github.com/tamzrod/sedscan/internal/metrics"
	"github.com/tamzrod/sedscan/internal/poller"
	"github.com/tamzrod/sedscan/internal/status"
)

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table <config.yaml>",
		Short: "Discover every configured drive once and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			return summarize(cmd.OutOrStdout(), cfg.Sedscan.Devices)
		},
	}
}

// summarize runs one discovery per device and prints one row each.
// Per-device failures are rows, not errors.
func summarize(w io.Writer, devices []config.DeviceConfig) error {
	headers := []string{"Device", "Path", "Present", "Families", "Locking", "Base ComID", "Unknown", "Result"}
	rows := make([][]string, 0, len(devices))

	for _, d := range devices {
		p, err := poller.Build(d, nil)
		if err != nil {
			return err
		}
		res := p.PollOnce()
		_ = p.Close()

		snap := status.Snapshot{}.WithCapabilities(res.Capabilities)

		row := []string{d.ID, d.Transport.Path, yesNo(snap.Present == 1), "-", "-", "-", "-", metrics.Result(res.Err)}
		if res.Err == nil {
			row[3] = familyList(snap.Families)
			row[4] = lockingState(snap.LockingFlags)
			if snap.BaseComID != 0 {
				row[5] = fmt.Sprintf("0x%04x", snap.BaseComID)
			}
			row[6] = strconv.Itoa(int(snap.UnknownFeatures))
		}
		rows = append(rows, row)
	}

	printTable(w, headers, rows)
	return nil
}

func lockingState(flags uint16) string {
	switch {
	case flags&status.LockingSupported == 0:
		return "-"
	case flags&status.LockingLocked != 0:
		return "locked"
	case flags&status.LockingEnabled != 0:
		return "enabled"
	default:
		return "disabled"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
