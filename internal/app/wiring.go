package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/ai"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/ai/gemini"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/ai/stub"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/repo/file"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/repo/postgres"
	redisstore "github.com/fairyhunter13/skills-gap-navigator/internal/adapter/repo/redis"
	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/service/ratelimiter"
)

// CredentialBackend is a credential store that can be probed for readiness.
type CredentialBackend interface {
	domain.CredentialStore
	Pinger
}

type pgBackend struct {
	*postgres.CredentialRepo
	pool *pgxpool.Pool
}

func (b pgBackend) Ping(ctx context.Context) error { return b.pool.Ping(ctx) }

// OpenRedis parses cfg.RedisURL and waits until the server answers PING.
func OpenRedis(ctx context.Context, cfg config.Config) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("op=app.OpenRedis: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := ConnectWithRetry(ctx, cfg, "redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("op=app.OpenRedis: %w", err)
	}
	return rdb, nil
}

// OpenCredentialStore opens the backend named by cfg.CredentialStore. rdb is
// reused for the redis backend when non-nil. The returned close func is never nil.
func OpenCredentialStore(ctx context.Context, cfg config.Config, rdb *goredis.Client) (CredentialBackend, func(), error) {
	noop := func() {}
	switch cfg.CredentialStore {
	case config.StoreRedis:
		closeFn := noop
		if rdb == nil {
			var err error
			if rdb, err = OpenRedis(ctx, cfg); err != nil {
				return nil, noop, err
			}
			closeFn = func() { _ = rdb.Close() }
		}
		return redisstore.New(rdb), closeFn, nil
	case config.StorePostgres:
		var pool *pgxpool.Pool
		err := ConnectWithRetry(ctx, cfg, "postgres", func(ctx context.Context) error {
			p, err := postgres.NewPool(ctx, cfg.DBURL)
			if err != nil {
				return err
			}
			if err := p.Ping(ctx); err != nil {
				p.Close()
				return err
			}
			pool = p
			return nil
		})
		if err != nil {
			return nil, noop, fmt.Errorf("op=app.OpenCredentialStore: %w", err)
		}
		repo := postgres.NewCredentialRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("op=app.OpenCredentialStore: %w", err)
		}
		return pgBackend{CredentialRepo: repo, pool: pool}, pool.Close, nil
	case config.StoreFile, "":
		dir, err := cfg.CredentialPath()
		if err != nil {
			return nil, noop, err
		}
		return file.New(dir), noop, nil
	default:
		return nil, noop, fmt.Errorf("op=app.OpenCredentialStore: unknown store %q", cfg.CredentialStore)
	}
}

// BuildCompleter assembles the AI adapter for cfg.AIProvider with the optional
// completion cache and the shared rate limiter (only when rdb is set).
func BuildCompleter(cfg config.Config, rdb *goredis.Client) domain.ConfigurableCompleter {
	var base domain.ConfigurableCompleter
	switch cfg.AIProvider {
	case config.ProviderStub:
		base = stub.New()
	default:
		base = gemini.New(gemini.Options{Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL})
	}
	slog.Info("ai provider selected", slog.String("provider", cfg.AIProvider), slog.String("model", cfg.GeminiModel))

	completer := ai.NewCompletionCache(base, cfg.AICacheSize)
	if rdb != nil && cfg.AIRateLimitPerMin > 0 {
		limiter := ratelimiter.NewRedisLuaLimiter(rdb, map[string]ratelimiter.BucketConfig{
			ai.RateLimitKey: ratelimiter.NewBucketConfigFromPerMinute(cfg.AIRateLimitPerMin),
		})
		completer = ai.NewRateLimited(completer, limiter, ai.RateLimitKey)
	}
	return completer
}
