package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sagarc03/spap"
	spaphttp "github.com/sagarc03/spap/http"
	"github.com/sagarc03/spap/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local HTTP server",
	Long: `Start a local HTTP server that emulates the API Gateway proxy
integration. Requests under the base path of --resource are served from
the configured contents location.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().String("resource", spaphttp.DefaultResource, "API Gateway resource template to emulate")
	serveCmd.Flags().Bool("metrics", false, "expose Prometheus metrics on /metrics")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}

	handler, closeStore, err := newHandler(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var server spap.Server = handler
	handlerConfig := spaphttp.HandlerConfig{
		Resource: cfg.Server.Resource,
		CORS:     cfg.CORS,
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		server = metrics.Instrument(handler, metrics.New(reg))
		handlerConfig.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      spaphttp.NewHandler(&handlerConfig, server).Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
	}()

	slog.Info("starting server", "addr", addr, "resource", cfg.Server.Resource, "metrics", cfg.Metrics.Enabled)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
