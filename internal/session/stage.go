package session

import (
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// Stage is the user-visible state of an orchestrator.
type Stage string

const (
	StageIdle              Stage = "idle"
	StageAwaitingAnalysis  Stage = "awaiting_analysis"
	StageHasAnalysis       Stage = "has_analysis"
	StageAwaitingPathways  Stage = "awaiting_pathways"
	StageHasPathways       Stage = "has_pathways"
	StageAwaitingEmployers Stage = "awaiting_employers"
	StageHasEmployers      Stage = "has_employers"
	StageErrored           Stage = "errored"
)

// Action is one of the three user actions that issue a query.
type Action string

const (
	ActionNone      Action = ""
	ActionSearch    Action = "search"
	ActionPathways  Action = "pathways"
	ActionEmployers Action = "employers"
)

type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseReady
	phaseErrored
)

// Snapshot is an immutable copy of the orchestrator state.
type Snapshot struct {
	Stage         Stage                       `json:"stage"`
	Community     string                      `json:"community,omitempty"`
	Area          string                      `json:"areaOfInterest,omitempty"`
	SelectedSkill *domain.SkillGap            `json:"selectedSkill,omitempty"`
	Analysis      *domain.JobMarketAnalysis   `json:"jobMarketAnalysis,omitempty"`
	Pathways      *domain.LearningPathways    `json:"learningPathways,omitempty"`
	Employers     *domain.EmployerSuggestions `json:"employerSuggestions,omitempty"`
	Loading       bool                        `json:"loading"`
	Error         *domain.APIError            `json:"error"`
	LastAction    Action                      `json:"lastAction,omitempty"`
	Generation    uint64                      `json:"generation"`
}

// HasPathways reports whether pathways are held for the selected skill. It can
// be true together with HasEmployers.
func (s Snapshot) HasPathways() bool { return s.Pathways != nil }

// HasEmployers reports whether employer suggestions are held for the selected skill.
func (s Snapshot) HasEmployers() bool { return s.Employers != nil }

// state is the mutable data behind a Snapshot. Callers hold the orchestrator lock.
type state struct {
	phase     phase
	action    Action // in flight while loading, last attempted otherwise
	community string
	area      string
	skill     *domain.SkillGap
	analysis  *domain.JobMarketAnalysis
	pathways  *domain.LearningPathways
	employers *domain.EmployerSuggestions
	err       *domain.APIError
}

func (s *state) stage() Stage {
	switch s.phase {
	case phaseLoading:
		switch s.action {
		case ActionPathways:
			return StageAwaitingPathways
		case ActionEmployers:
			return StageAwaitingEmployers
		default:
			return StageAwaitingAnalysis
		}
	case phaseErrored:
		return StageErrored
	case phaseReady:
		switch {
		case s.action == ActionEmployers && s.employers != nil:
			return StageHasEmployers
		case s.action == ActionPathways && s.pathways != nil:
			return StageHasPathways
		case s.analysis != nil:
			return StageHasAnalysis
		}
	}
	return StageIdle
}

// retryAction picks what retry re-runs. Skill follow-ups come first and pathways
// beat employers when both are missing; a missing analysis means the search.
func (s *state) retryAction() Action {
	switch {
	case s.skill != nil && s.pathways == nil && s.employers == nil:
		return ActionPathways
	case s.skill != nil && s.pathways != nil && s.employers == nil:
		return ActionEmployers
	case s.skill != nil && s.pathways == nil && s.employers != nil:
		return ActionPathways
	case s.analysis == nil:
		return ActionSearch
	default:
		return s.action
	}
}

func (s *state) snapshot(gen uint64) Snapshot {
	snap := Snapshot{
		Stage:      s.stage(),
		Community:  s.community,
		Area:       s.area,
		Loading:    s.phase == phaseLoading,
		Error:      s.err,
		LastAction: s.action,
		Generation: gen,
	}
	if s.skill != nil {
		sk := *s.skill
		snap.SelectedSkill = &sk
	}
	// Payloads are never mutated after a query settles, so sharing them is safe.
	snap.Analysis = s.analysis
	snap.Pathways = s.pathways
	snap.Employers = s.employers
	return snap
}
