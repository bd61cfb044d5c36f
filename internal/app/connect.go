package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
)

// ConnectWithRetry calls connect until it succeeds, the backoff budget from
// cfg is spent, or ctx ends. It returns the last error.
func ConnectWithRetry(ctx context.Context, cfg config.Config, name string, connect func(ctx context.Context) error) error {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := cfg.GetConnectBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier

	attempt := 0
	op := func() error {
		attempt++
		return connect(ctx)
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("store connect failed, retrying",
			slog.String("store", name),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(expo, ctx), notify); err != nil {
		return err
	}
	slog.Info("store connected", slog.String("store", name), slog.Int("attempts", attempt))
	return nil
}
