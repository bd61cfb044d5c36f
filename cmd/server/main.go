// Command server starts the Skills Gap Navigator HTTP API.
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

	goredis "github.com/redis/go-redis/v9"

	httpserver "github.com/fairyhunter13/skills-gap-navigator/internal/adapter/httpserver"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/app"
	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs the shared AI rate limiter and, optionally, the credential store.
	var rdb *goredis.Client
	if cfg.CredentialStore == config.StoreRedis || cfg.AIRateLimitPerMin > 0 {
		rdb, err = app.OpenRedis(ctx, cfg)
		if err != nil {
			slog.Error("redis connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
	}

	store, closeStore, err := app.OpenCredentialStore(ctx, cfg, rdb)
	if err != nil {
		slog.Error("credential store open failed", slog.String("store", cfg.CredentialStore), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	completer := app.BuildCompleter(cfg, rdb)
	creds := usecase.NewCredentialManager(store, completer, cfg.GeminiAPIKey)
	if st, err := creds.Bootstrap(ctx); err != nil {
		slog.Warn("credential bootstrap failed", slog.Any("error", err))
	} else {
		slog.Info("credential status", slog.Bool("configured", st.Configured), slog.String("source", st.Source))
	}

	sessions := session.NewRegistry(usecase.NewQueryService(completer), cfg.QueryTimeout, cfg.SessionIdleTTL)
	go sessions.Run(ctx, time.Minute)

	srv := httpserver.NewServer(cfg, sessions, creds, app.StoreCheck(store))
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port), slog.String("credential_store", cfg.CredentialStore))
		errCh <- srvHTTP.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
