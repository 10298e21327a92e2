// File: cmd/limelight/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/dverbeek84/limelight-cli/cmd"
	"github.com/dverbeek84/limelight-cli/internal/observability"
)

// main is the entry point for the limelight CLI.
func main() {
	// Listen for interrupt signals so a Ctrl+C mid-run still persists the
	// partial sample before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()

	if err != nil {
		// A signal-triggered cancellation is a graceful shutdown, not a failure.
		if errors.Is(err, context.Canceled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
