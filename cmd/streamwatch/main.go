// File: cmd/streamwatch/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/streamwatch-cli/cmd"
	"github.com/xkilldash9x/streamwatch-cli/internal/observability"
)

func main() {
	// Listen for interrupt signals so an in-flight check aborts gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
