package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"kakeibo/internal/cli"
	httpserver "kakeibo/internal/http"
	"kakeibo/internal/ledger"
	"kakeibo/internal/metrics"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := ledger.New(cfg.MaxRecords)
	metrics.Init(func() float64 { return float64(store.Count()) })

	srv := httpserver.NewServer(":"+cfg.Port, store, httpserver.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SummaryCacheSize:   cfg.SummaryCacheSize,
		SummaryCacheTTL:    cfg.SummaryCacheTTL,
	})
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = cfg.IdleTimeout
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 15*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Server starting",
		"port", cfg.Port,
		"max_records", cfg.MaxRecords,
		"rate_limit_per_minute", cfg.RateLimitPerMinute)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
