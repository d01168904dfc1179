package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/api"
	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/config"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web frontend",
		Long: `Run the web frontend against the configured backend.

Prometheus metrics are exposed at /metrics and a liveness probe at /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := options.overrides()
			overrides.Port = port
			return runServe(cmd.Context(), overrides)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, overrides config.Overrides) error {
	cfg, err := config.Load(overrides)
	if err != nil {
		return err
	}
	logger := logging.Configure(cfg.LogLevel, cfg.LogFormat)
	if cfg.SecretGenerated {
		logger.Warn("SECRET_KEY is not set; using an ephemeral key, sessions will not survive a restart")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	backend, err := client.New(client.Config{
		BaseURL:        cfg.BackendURL,
		Timeout:        cfg.RequestTimeout,
		UserAgent:      "coachdesk/" + Version,
		Metrics:        client.NewMetrics(registry),
		OnUnauthorized: session.InvalidateFromContext,
	})
	if err != nil {
		return err
	}
	facade := services.NewServices(backend)
	checkBackendVersion(ctx, facade, logger)

	handler, err := api.NewHandler(api.Options{
		Services:     facade,
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		Location:     cfg.Location,
		PageSize:     cfg.PageSize,
		LogFetchCap:  cfg.LogFetchCap,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler, api.AppOptions{
		Registerer:   registry,
		Gatherer:     registry,
		CookieSecure: cfg.CookieSecure,
		AccessLog:    true,
	})

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("coachdesk listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("backend", cfg.BackendURL),
		zap.String("tz", cfg.Location.String()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// checkBackendVersion only warns: an unreachable backend at startup should not
// keep the frontend down.
func checkBackendVersion(ctx context.Context, facade *services.Services, logger *zap.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	versionCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	reported, err := facade.Version.BackendVersion(versionCtx)
	if err != nil {
		logger.Warn("backend version check skipped", zap.Error(err))
		return
	}
	if err := services.CheckBackendCompatibility(reported, services.MinBackendVersion); err != nil {
		if errors.Is(err, services.ErrBackendTooOld) {
			logger.Warn("backend is older than supported",
				zap.String("reported", reported),
				zap.String("minimum", services.MinBackendVersion),
			)
			return
		}
		logger.Warn("backend version unreadable", zap.String("reported", reported), zap.Error(err))
		return
	}
	logger.Info("backend version ok", zap.String("version", reported))
}
