package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/app"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the wizard in the terminal",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringP("output-format", "o", "", "Format of the submitted record: json, yaml or pretty")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rt, err := app.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	w := wizard.New(
		wizard.WithTransport(rt.Transport),
		wizard.WithLogger(logger),
	)
	shell := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
		tui.WithOutput(cmd.OutOrStdout()),
		tui.WithOutputFormat(tui.OutputFormat(cfg.OutputFormat)),
		tui.WithLogger(logger),
	)

	record, err := shell.Run(cmd.Context(), w)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debug("wizard completed", zap.String("email", record.Email))
	return nil
}
