package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
)

// Version set via ldflags during build
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "formwizard",
	Short:         "Multi-step signup form wizard",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `formwizard collects a signup record over four steps (personal details,
preferences, contact information, review) and submits it through a
configurable transport.

Run it in the terminal with "tui" or serve it as HTML with "serve".`,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("transport", "", "Submission transport: delay, http or nats")
	flags.Duration("submit-delay", 0, "Simulated latency of the delay transport")
	flags.String("http-endpoint", "", "Endpoint the http transport posts records to")
	flags.String("nats-url", "", "NATS server URL (empty starts an embedded server)")
	flags.String("nats-subject", "", "Subject records are published on")
	flags.Bool("nats-request-reply", false, "Wait for a receiver reply instead of fire-and-forget")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: console or json")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "formwizard:", err)
		os.Exit(1)
	}
}

// load resolves configuration with the command's flags bound on top and
// builds the logger it names.
func load(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
