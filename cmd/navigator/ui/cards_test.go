package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
)

func plain() Renderer { return Renderer{Styles: NewStyles(Sky)} }

func TestAnalysisNumbersSkillGaps(t *testing.T) {
	out := plain().Analysis("Austin", "energy", &domain.JobMarketAnalysis{
		JobTrends:  []domain.JobTrend{{Name: "Solar growth", Description: "More installs"}},
		SkillsGaps: []domain.SkillGap{{Name: "PV Install"}, {Name: "Grid Ops"}},
	})
	assert.Contains(t, out, "Skills Landscape: Austin • energy")
	assert.Contains(t, out, "Solar growth")
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "Grid Ops")
}

func TestEmptySectionsUseFallbackTexts(t *testing.T) {
	r := plain()
	out := r.Analysis("Austin", "", &domain.JobMarketAnalysis{})
	assert.Contains(t, out, NoJobTrends)
	assert.Contains(t, out, NoSkillGaps)

	out = r.Pathways("Welding", &domain.LearningPathways{})
	assert.Contains(t, out, NoOnlineCourses)
	assert.Contains(t, out, NoMentorships)
	assert.Contains(t, out, NoApprenticeships)

	out = r.Employers("Welding", "Austin", &domain.EmployerSuggestions{})
	assert.Contains(t, out, "Career Opportunities: Welding in Austin")
	assert.Contains(t, out, NoEmployers)
}

func TestSnapshotHidesResultsOnError(t *testing.T) {
	r := plain()
	snap := session.Snapshot{
		Stage:    session.StageErrored,
		Analysis: &domain.JobMarketAnalysis{JobTrends: []domain.JobTrend{{Name: "Hidden trend"}}},
		Error:    domain.NewAPIError(domain.KindTransport, domain.MsgTransportFailed, "status 503"),
	}
	out := r.Snapshot(snap)
	assert.Contains(t, out, domain.MsgTransportFailed)
	assert.Contains(t, out, "status 503")
	assert.Contains(t, out, "retry")
	assert.NotContains(t, out, "Hidden trend")
}

func TestSnapshotShowsPathwaysAndEmployersTogether(t *testing.T) {
	out := plain().Snapshot(session.Snapshot{
		Stage:         session.StageHasEmployers,
		Community:     "Austin",
		SelectedSkill: &domain.SkillGap{Name: "PV Install"},
		Analysis:      &domain.JobMarketAnalysis{},
		Pathways:      &domain.LearningPathways{OnlineCourses: []domain.OnlineCourse{{Name: "PV 101"}}},
		Employers:     &domain.EmployerSuggestions{Suggestions: []domain.EmployerSuggestion{{SectorOrCompanyType: "Utilities"}}},
	})
	assert.Contains(t, out, "Learning Pathways: PV Install")
	assert.Contains(t, out, "PV 101")
	assert.Contains(t, out, "Utilities")
}

func TestSnapshotIdle(t *testing.T) {
	assert.Contains(t, plain().Snapshot(session.Snapshot{Stage: session.StageIdle}), "search")
}
