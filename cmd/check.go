// File: cmd/check.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/browser"
	"github.com/xkilldash9x/streamwatch-cli/internal/config"
	"github.com/xkilldash9x/streamwatch-cli/internal/observability"
	"github.com/xkilldash9x/streamwatch-cli/internal/reporting"
	"github.com/xkilldash9x/streamwatch-cli/internal/scenario"
)

// shutdownGrace bounds browser teardown after the run finishes or aborts.
const shutdownGrace = 15 * time.Second

// newCheckCmd creates and configures the `check` command.
func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [topic]",
		Short: "Runs the live stream check against the configured site",
		Long: `Check opens the mobile site, searches for the given topic (or the
configured default), picks the first live channel from the results, and
verifies its stream reaches a playable state. A JSON report and screenshots
are written under the report directory.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind only flags the user set; binding an unset flag would let
			// its empty default shadow the configured value.
			bindings := map[string]string{
				"browser":  "browser.name",
				"headless": "browser.headless",
				"device":   "browser.device",
				"topic":    "site.topic",
			}
			var bindErr error
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if key, ok := bindings[f.Name]; ok && bindErr == nil {
					bindErr = viper.BindPFlag(key, f)
				}
			})
			return bindErr
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Site.Topic = args[0]
			}
			return runCheck(cmd.Context(), cfg)
		},
	}

	checkCmd.Flags().String("browser", "", "browser to launch (chrome or edge)")
	checkCmd.Flags().Bool("headless", true, "run the browser headless")
	checkCmd.Flags().String("device", "", "mobile device profile to emulate")
	checkCmd.Flags().String("topic", "", "search topic for the check")

	return checkCmd
}

// runCheck launches the browser, executes the scenario, and writes the run
// report. The check's failure is reported after artifacts are persisted.
func runCheck(ctx context.Context, cfg *config.Config) error {
	logger := observability.GetLogger()

	manager, err := browser.NewManager(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := manager.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Browser shutdown did not complete cleanly.", zap.Error(err))
		}
	}()

	session, err := manager.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("opening browser session: %w", err)
	}
	defer session.Close(context.Background())

	recorder := reporting.NewRecorder(cfg.Browser.Name, manager.Profile().Name, cfg.Site.Topic)
	logger.Info("Starting stream check.",
		zap.String("run_id", recorder.RunID()),
		zap.String("topic", cfg.Site.Topic))

	runner := scenario.NewRunner(logger, cfg, session, recorder)
	runErr := runner.Run(ctx)

	report := recorder.Finalize()
	path, writeErr := reporting.WriteFile(cfg.Report.Dir, report)
	if writeErr != nil {
		logger.Error("Could not write run report.", zap.Error(writeErr))
	} else {
		logger.Info("Run report written.", zap.String("path", path))
	}

	if runErr != nil {
		return fmt.Errorf("stream check failed: %w", runErr)
	}
	if writeErr != nil {
		return writeErr
	}

	fmt.Fprintf(os.Stdout, "Check passed. Report: %s\n", path)
	return nil
}
