// Package session holds the navigator state machine and the registry of live
// sessions served over HTTP.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
	"github.com/fairyhunter13/skills-gap-navigator/pkg/textx"
)

// Queries is the subset of usecase.QueryService the orchestrator drives.
type Queries interface {
	FetchJobMarketAnalysis(ctx context.Context, community, area string) (domain.JobMarketAnalysis, error)
	FetchLearningPathways(ctx context.Context, community, skill string) (domain.LearningPathways, error)
	FetchEmployerSuggestions(ctx context.Context, community, skill string) (domain.EmployerSuggestions, error)
}

// Orchestrator runs the search, pathways and employers actions for one user.
//
// Each action blocks until its query settles and returns the resulting Snapshot.
// Actions may be called concurrently: every action takes a new generation and a
// completion is applied only while its generation is still the latest, so the
// most recently started action always owns the visible state. Superseded calls
// are not cancelled.
type Orchestrator struct {
	queries Queries
	timeout time.Duration

	mu    sync.Mutex
	gen   uint64
	state state
}

// NewOrchestrator returns an Idle orchestrator. timeout bounds each query; zero
// means no limit.
func NewOrchestrator(queries Queries, timeout time.Duration) *Orchestrator {
	return &Orchestrator{queries: queries, timeout: timeout}
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.snapshot(o.gen)
}

// SubmitSearch clears every result and runs the job market analysis. It is
// valid from any stage. An empty community is rejected without a state change.
func (o *Orchestrator) SubmitSearch(ctx context.Context, community, area string) (Snapshot, error) {
	community, area = textx.SanitizeText(community), textx.SanitizeText(area)
	if community == "" {
		return o.Snapshot(), fmt.Errorf("%w: %s", domain.ErrInvalidArgument, usecase.MsgCommunityRequired)
	}

	o.mu.Lock()
	gen := o.beginLocked(ActionSearch)
	o.state.community, o.state.area = community, area
	o.state.skill, o.state.analysis, o.state.pathways, o.state.employers = nil, nil, nil, nil
	o.mu.Unlock()

	res, err := withTimeout(ctx, o.timeout, func(qctx context.Context) (domain.JobMarketAnalysis, error) {
		return o.queries.FetchJobMarketAnalysis(qctx, community, area)
	})

	return o.settle(ctx, gen, err, func(s *state) { s.analysis = &res }), nil
}

// SelectSkillForPathways records skill as selected, clears the follow-up
// results and fetches learning pathways. It requires an analysis.
func (o *Orchestrator) SelectSkillForPathways(ctx context.Context, skill domain.SkillGap) (Snapshot, error) {
	skill.Name = textx.SanitizeText(skill.Name)
	if skill.Name == "" {
		return o.Snapshot(), fmt.Errorf("%w: skill name is required", domain.ErrInvalidArgument)
	}

	o.mu.Lock()
	if o.state.analysis == nil {
		snap := o.state.snapshot(o.gen)
		o.mu.Unlock()
		return snap, fmt.Errorf("%w: run a search before selecting a skill", domain.ErrInvalidState)
	}
	gen := o.beginLocked(ActionPathways)
	o.state.skill = &skill
	o.state.pathways, o.state.employers = nil, nil
	community := o.state.community
	o.mu.Unlock()

	res, err := withTimeout(ctx, o.timeout, func(qctx context.Context) (domain.LearningPathways, error) {
		return o.queries.FetchLearningPathways(qctx, community, skill.Name)
	})

	return o.settle(ctx, gen, err, func(s *state) { s.pathways = &res }), nil
}

// SelectSkillForEmployers records skill as selected and fetches employer
// suggestions. Pathways already held for the same skill are kept.
func (o *Orchestrator) SelectSkillForEmployers(ctx context.Context, skill domain.SkillGap) (Snapshot, error) {
	skill.Name = textx.SanitizeText(skill.Name)
	if skill.Name == "" {
		return o.Snapshot(), fmt.Errorf("%w: skill name is required", domain.ErrInvalidArgument)
	}

	o.mu.Lock()
	if o.state.analysis == nil {
		snap := o.state.snapshot(o.gen)
		o.mu.Unlock()
		return snap, fmt.Errorf("%w: run a search before selecting a skill", domain.ErrInvalidState)
	}
	gen := o.beginLocked(ActionEmployers)
	if o.state.skill == nil || o.state.skill.Name != skill.Name {
		o.state.pathways = nil
	}
	o.state.skill = &skill
	o.state.employers = nil
	community := o.state.community
	o.mu.Unlock()

	res, err := withTimeout(ctx, o.timeout, func(qctx context.Context) (domain.EmployerSuggestions, error) {
		return o.queries.FetchEmployerSuggestions(qctx, community, skill.Name)
	})

	return o.settle(ctx, gen, err, func(s *state) { s.employers = &res }), nil
}

// Retry re-runs the action whose result is missing. Only valid when Errored.
func (o *Orchestrator) Retry(ctx context.Context) (Snapshot, error) {
	o.mu.Lock()
	if o.state.phase != phaseErrored {
		snap := o.state.snapshot(o.gen)
		o.mu.Unlock()
		return snap, fmt.Errorf("%w: nothing to retry in stage %s", domain.ErrInvalidState, snap.Stage)
	}
	action := o.state.retryAction()
	community, area := o.state.community, o.state.area
	var skill domain.SkillGap
	if o.state.skill != nil {
		skill = *o.state.skill
	}
	o.mu.Unlock()

	observability.LoggerFromContext(ctx).Info("retrying last action", slog.String("action", string(action)))
	switch action {
	case ActionPathways:
		return o.SelectSkillForPathways(ctx, skill)
	case ActionEmployers:
		return o.SelectSkillForEmployers(ctx, skill)
	default:
		return o.SubmitSearch(ctx, community, area)
	}
}

// beginLocked starts a new generation for action and enters the loading phase.
func (o *Orchestrator) beginLocked(action Action) uint64 {
	o.gen++
	o.state.phase = phaseLoading
	o.state.action = action
	o.state.err = nil
	observability.ObserveTransition(string(o.state.stage()))
	return o.gen
}

// settle applies a completed query when gen is still current. apply runs only
// on success.
func (o *Orchestrator) settle(ctx context.Context, gen uint64, err error, apply func(*state)) Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	lg := observability.LoggerFromContext(ctx)
	if gen != o.gen {
		observability.StaleCompletionsTotal.Inc()
		lg.Info("discarding superseded completion",
			slog.Uint64("generation", gen),
			slog.Uint64("current", o.gen))
		return o.state.snapshot(o.gen)
	}

	if err != nil {
		o.state.phase = phaseErrored
		o.state.err = domain.AsAPIError(err)
	} else {
		o.state.phase = phaseReady
		apply(&o.state)
	}
	snap := o.state.snapshot(o.gen)
	observability.ObserveTransition(string(snap.Stage))
	lg.Debug("session transition",
		slog.String("stage", string(snap.Stage)),
		slog.String("action", string(snap.LastAction)),
		slog.Uint64("generation", gen))
	return snap
}

// withTimeout runs fn detached from ctx cancellation, bounded by timeout.
func withTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	qctx := context.WithoutCancel(ctx)
	if timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(qctx, timeout)
		defer cancel()
	}
	return fn(qctx)
}
