// Package gemini implements the AI completion adapter on the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

const providerName = "gemini"

// Options tunes the client. Zero values are fine for production.
type Options struct {
	Model string
	// BaseURL overrides the Gemini endpoint, mainly for tests.
	BaseURL string
	// HTTPClient is passed to the SDK when set.
	HTTPClient *http.Client
}

// Client is a domain.ConfigurableCompleter backed by the Gemini API.
// It starts unconfigured; Configure installs a token.
type Client struct {
	opts Options

	mu     sync.RWMutex
	client *genai.Client
}

var _ domain.ConfigurableCompleter = (*Client)(nil)

// New returns an unconfigured client.
func New(opts Options) *Client {
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash-preview-04-17"
	}
	return &Client{opts: opts}
}

// Model returns the model identifier used for completions.
func (c *Client) Model() string { return c.opts.Model }

// Configure installs token after trimming it. An empty token clears the client
// and returns false.
func (c *Client) Configure(token string) bool {
	token = strings.TrimSpace(token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.client = nil
		return false
	}

	cc := &genai.ClientConfig{
		APIKey:     token,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.opts.HTTPClient,
	}
	if c.opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.opts.BaseURL}
	}
	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		slog.Error("failed to create Gemini client", slog.Any("error", err))
		c.client = nil
		return false
	}
	c.client = client
	slog.Info("Gemini client configured", slog.String("model", c.opts.Model))
	return true
}

// Configured reports whether a token is installed.
func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client != nil
}

// Complete sends prompt as a single user turn and returns the raw response text.
// There is no retry; failures surface as *domain.APIError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return "", domain.NewAPIError(domain.KindConfig, domain.MsgNotConfigured, "")
	}

	lg := observability.LoggerFromContext(ctx)
	tokens := tokencount.EstimateDefault(prompt, c.opts.Model)

	ctx, span := observability.Tracer().Start(ctx, "gemini.GenerateContent")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", providerName),
		attribute.String("ai.model", c.opts.Model),
		attribute.Int("ai.prompt_tokens", tokens),
	)

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, c.opts.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	dur := time.Since(start)
	if err != nil {
		observability.ObserveAIRequest(providerName, "error", dur, tokens)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		lg.Error("Gemini request failed",
			slog.String("model", c.opts.Model),
			slog.Duration("duration", dur),
			slog.Any("error", err))
		return "", domain.NewAPIError(domain.KindTransport, domain.MsgTransportFailed, describe(err))
	}

	text := resp.Text()
	observability.ObserveAIRequest(providerName, "success", dur, tokens)
	lg.Debug("Gemini request completed",
		slog.String("model", c.opts.Model),
		slog.Duration("duration", dur),
		slog.Int("prompt_tokens", tokens),
		slog.Int("response_len", len(text)))
	return text, nil
}

// describe extracts the most useful details from an SDK error.
func describe(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErrorDetails(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrorDetails(*apiErrPtr)
	}
	return err.Error()
}

func apiErrorDetails(e genai.APIError) string {
	switch {
	case e.Status != "" && e.Message != "":
		return fmt.Sprintf("%d %s: %s", e.Code, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	default:
		return fmt.Sprintf("status %d", e.Code)
	}
}
