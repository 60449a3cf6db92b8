// cmd/sedscan/commands/events.go
package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/sedscan/internal/eventlog"
)

func newEventsCmd() *cobra.Command {
	var deviceID string

	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Print a discovery event log written by run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := eventlog.NewReader(args[0], deviceID)
			if err != nil {
				return err
			}
			defer r.Close()

			return printEvents(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "only events of this device")

	return cmd
}

func printEvents(w io.Writer, r *eventlog.Reader) error {
	var rows [][]string
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			rec.Timestamp.Format(time.RFC3339Nano),
			rec.DeviceID,
			rec.Kind,
			eventDetail(rec),
		})
	}

	printTable(w, []string{"Time", "Device", "Event", "Detail"}, rows)
	return nil
}

func eventDetail(rec eventlog.Record) string {
	switch rec.Kind {
	case "unknown_feature":
		return fmt.Sprintf("code=0x%04x offset=%d", rec.Code, rec.Offset)
	case "unknown_revision":
		return fmt.Sprintf("revision=%d", rec.Revision)
	case "decode_failed":
		return fmt.Sprintf("offset=%d err=%s", rec.Offset, rec.Error)
	case "decode_done":
		return fmt.Sprintf("unknown=%d", rec.Unknown)
	default:
		return ""
	}
}
