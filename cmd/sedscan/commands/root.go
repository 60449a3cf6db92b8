// cmd/sedscan/commands/root.go
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
)

// ErrReported marks an error that was already printed for the user.
var ErrReported = errors.New("reported")

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sedscan",
		Short: "sedscan - TCG self-encrypting drive capability scanner",
		Long: `sedscan reads the TCG Level 0 Discovery response of self-encrypting
drives, decodes the advertised feature set and publishes it as a fixed
status block over Modbus TCP or raw ingest.

Use "sedscan [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newDiscoverCmd(),
		newTableCmd(),
		newStatusCmd(),
		newEventsCmd(),
		newVersionCmd(),
	)
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

// Execute runs the command tree. Called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sedscan %s (%s)\n", Version, Commit)
		},
	}
}
