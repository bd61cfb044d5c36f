// Package usecase contains the navigator's application services: the three
// insight queries and the credential manager.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/ai"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/pkg/textx"
)

// MsgCommunityRequired is returned when a query is attempted without a community.
const MsgCommunityRequired = "Please enter a community or location."

// QueryService runs the insight queries against a text completer. It holds no
// mutable state and is safe for concurrent use.
type QueryService struct {
	AI domain.TextCompleter
}

// NewQueryService constructs a QueryService.
func NewQueryService(completer domain.TextCompleter) QueryService {
	return QueryService{AI: completer}
}

// FetchJobMarketAnalysis asks for job trends and skills gaps in community,
// optionally narrowed to area.
func (s QueryService) FetchJobMarketAnalysis(ctx context.Context, community, area string) (domain.JobMarketAnalysis, error) {
	community, area = textx.SanitizeText(community), textx.SanitizeText(area)
	if community == "" {
		return domain.JobMarketAnalysis{}, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, MsgCommunityRequired)
	}
	return run[domain.JobMarketAnalysis](ctx, s.AI, domain.QueryAnalysis, AnalysisPrompt(community, area), ai.AnalysisSchema,
		attribute.String("query.community", community),
		attribute.String("query.area", area))
}

// FetchLearningPathways asks for courses, mentorship and apprenticeships for skill.
func (s QueryService) FetchLearningPathways(ctx context.Context, community, skill string) (domain.LearningPathways, error) {
	community, skill = textx.SanitizeText(community), textx.SanitizeText(skill)
	if err := requireSkillQuery(community, skill); err != nil {
		return domain.LearningPathways{}, err
	}
	return run[domain.LearningPathways](ctx, s.AI, domain.QueryPathways, PathwaysPrompt(community, skill), ai.PathwaysSchema,
		attribute.String("query.community", community),
		attribute.String("query.skill", skill))
}

// FetchEmployerSuggestions asks which employers hire for skill near community.
func (s QueryService) FetchEmployerSuggestions(ctx context.Context, community, skill string) (domain.EmployerSuggestions, error) {
	community, skill = textx.SanitizeText(community), textx.SanitizeText(skill)
	if err := requireSkillQuery(community, skill); err != nil {
		return domain.EmployerSuggestions{}, err
	}
	return run[domain.EmployerSuggestions](ctx, s.AI, domain.QueryEmployers, EmployersPrompt(community, skill), ai.EmployersSchema,
		attribute.String("query.community", community),
		attribute.String("query.skill", skill))
}

func requireSkillQuery(community, skill string) error {
	if community == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, MsgCommunityRequired)
	}
	if skill == "" {
		return fmt.Errorf("%w: skill name is required", domain.ErrInvalidArgument)
	}
	return nil
}

// run completes prompt and parses the reply into T. Every failure is returned as *domain.APIError.
func run[T any](ctx context.Context, completer domain.TextCompleter, kind domain.QueryKind, prompt string, schema ai.Schema, attrs ...attribute.KeyValue) (T, error) {
	var zero T
	lg := observability.LoggerFromContext(ctx).With(slog.String("query", string(kind)))

	ctx, span := observability.Tracer().Start(ctx, "usecase.Fetch."+string(kind))
	defer span.End()
	span.SetAttributes(attrs...)

	start := time.Now()
	fail := func(apiErr *domain.APIError) (T, error) {
		observability.ObserveQuery(string(kind), string(apiErr.Kind), time.Since(start))
		span.SetStatus(codes.Error, apiErr.Message)
		lg.Warn("query failed",
			slog.String("kind", string(apiErr.Kind)),
			slog.String("message", apiErr.Message),
			slog.String("details", apiErr.Details),
			slog.Duration("duration", time.Since(start)))
		return zero, apiErr
	}

	if completer == nil {
		return fail(domain.NewAPIError(domain.KindConfig, domain.MsgNotConfigured, ""))
	}
	raw, err := completer.Complete(ctx, prompt)
	if err != nil {
		return fail(domain.AsAPIError(err))
	}
	out, err := ai.Parse[T](raw, schema)
	if err != nil {
		return fail(domain.AsAPIError(err))
	}

	observability.ObserveQuery(string(kind), "success", time.Since(start))
	lg.Info("query completed", slog.Duration("duration", time.Since(start)))
	return out, nil
}
