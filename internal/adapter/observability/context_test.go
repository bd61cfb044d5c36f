package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWithLogger_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := ContextWithLogger(context.Background(), lg)
	LoggerFromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	base := context.Background()
	assert.Equal(t, base, ContextWithLogger(base, nil))
	assert.NotNil(t, LoggerFromContext(base))
}

func TestLoggerFromContext_DefaultGetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := ContextWithRequestID(context.Background(), "req-123")
	LoggerFromContext(ctx).Info("query")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestContextWithRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, ContextWithRequestID(ctx, ""))
	assert.Equal(t, "", RequestIDFromContext(ctx))
	assert.Equal(t, "req-456", RequestIDFromContext(ContextWithRequestID(ctx, "req-456")))
}
