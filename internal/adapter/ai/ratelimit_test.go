package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

func TestRateLimited_Denied(t *testing.T) {
	base := &fakeCompleter{reply: "{}"}
	lim := &fakeLimiter{allowed: false}
	wrapped := NewRateLimited(base, lim, RateLimitKey)

	_, err := wrapped.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRateLimited))
	assert.Equal(t, 0, base.calls)
	assert.Equal(t, []string{RateLimitKey}, lim.keys)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "retry after 2s", apiErr.Details)
}

func TestRateLimited_FailOpen(t *testing.T) {
	base := &fakeCompleter{reply: "{}"}
	wrapped := NewRateLimited(base, &fakeLimiter{allowed: true, err: errors.New("redis down")}, RateLimitKey)

	out, err := wrapped.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
	assert.Equal(t, 1, base.calls)
}

func TestRateLimited_NilLimiterReturnsBase(t *testing.T) {
	base := &fakeCompleter{}
	assert.Same(t, base, NewRateLimited(base, nil, RateLimitKey))
}

func TestRateLimited_PassesConfigure(t *testing.T) {
	base := &fakeCompleter{}
	wrapped := NewRateLimited(base, &fakeLimiter{allowed: true}, RateLimitKey)
	assert.False(t, wrapped.Configured())
	assert.True(t, wrapped.Configure(" tok "))
	assert.True(t, wrapped.Configured())
}
