package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formwizard/internal/app"
	"github.com/goliatone/go-formwizard/pkg/renderers/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wizard as HTML",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen-addr", "", "Address the HTTP server listens on")
	serveCmd.Flags().Duration("session-ttl", 0, "Idle time after which a browser session expires")
	serveCmd.Flags().String("theme", "", "Theme name")
	serveCmd.Flags().String("theme-variant", "", "Theme variant, for example dark")
}

func runServe(cmd *cobra.Command, _ []string) error {
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

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	shell, err := web.NewServer(
		web.WithTransport(rt.Transport),
		web.WithLogger(logger),
		web.WithRegistry(reg),
		web.WithSessionTTL(cfg.SessionTTL),
		web.WithTheme(cfg.Theme, cfg.ThemeVariant),
	)
	if err != nil {
		return err
	}
	defer func() { _ = shell.Close() }()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           shell,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("transport", cfg.Transport))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
