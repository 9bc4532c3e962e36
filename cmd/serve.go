package main

import (
	"builtat/internal/aggregator"
	"builtat/internal/api"
	"builtat/internal/api/handler/v1handler"
	"builtat/internal/config"
	"builtat/pkg/logger"
	"builtat/pkg/metrics"
	"builtat/pkg/platform/vercel"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupAggregator builds the upstream client and the aggregation pipeline.
// The returned function flushes and stops the otel meter provider.
func setupAggregator(ctx context.Context, cfg *config.Config) (aggregator.Aggregator, func(ctx context.Context)) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}

	if cfg.Upstream.Token == "" {
		logger.Warn(ctx, "UPSTREAM_TOKEN is not set, every request will fail until it is configured")
	}
	platformClient := vercel.New(
		&http.Client{Timeout: cfg.Upstream.Timeout},
		cfg.Upstream.BaseURL,
		cfg.Upstream.Token,
	)

	opts, err := aggregator.NewOptions(cfg)
	if err != nil {
		logger.Fatal(ctx, "invalid aggregator options", zap.Error(err))
	}

	return aggregator.New(platformClient, opts, mp), func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func setupServer(ctx context.Context, cfg *config.Config, agg aggregator.Aggregator) func(ctx context.Context) {
	server := api.NewServer(api.Deps{Deps: v1handler.Deps{Aggregator: agg}}, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the aggregator API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			agg, stopMetrics := setupAggregator(ctx, cfg)
			stopWebserver := setupServer(ctx, cfg, agg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopMetrics(shutdownCtx)
		},
	}

	return cmd
}
