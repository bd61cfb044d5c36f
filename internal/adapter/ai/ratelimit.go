package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/service/ratelimiter"
)

// RateLimitKey is the bucket consulted before every AI call.
const RateLimitKey = "ai:gemini"

type rateLimited struct {
	base    domain.ConfigurableCompleter
	limiter ratelimiter.Limiter
	key     string
}

// NewRateLimited consults limiter before each completion. A nil limiter returns base.
func NewRateLimited(base domain.ConfigurableCompleter, limiter ratelimiter.Limiter, key string) domain.ConfigurableCompleter {
	if base == nil || limiter == nil {
		return base
	}
	return &rateLimited{base: base, limiter: limiter, key: key}
}

func (r *rateLimited) Complete(ctx context.Context, prompt string) (string, error) {
	allowed, retryAfter, err := r.limiter.Allow(ctx, r.key, 1)
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing call", slog.String("key", r.key), slog.Any("error", err))
		return r.base.Complete(ctx, prompt)
	}
	if !allowed {
		return "", domain.NewAPIError(domain.KindRateLimited,
			"Too many requests to the AI service. Please wait and retry.",
			fmt.Sprintf("retry after %s", retryAfter.Round(time.Second)))
	}
	return r.base.Complete(ctx, prompt)
}

func (r *rateLimited) Configure(token string) bool { return r.base.Configure(token) }

func (r *rateLimited) Configured() bool { return r.base.Configured() }
