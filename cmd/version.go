// File: cmd/version.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the application version.
// This value is intended to be set at build time using ldflags.
// Example: go build -ldflags "-X github.com/dverbeek84/limelight-cli/cmd.Version=1.0.0"
var Version = "0.1.0"

// newVersionCmd creates the `version` command, an alias for --version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the limelight version",
		Args:  cobra.NoArgs,
		// Skip config and logger setup; version must work with a broken config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "limelight %s\n", Version)
			return nil
		},
	}
}
