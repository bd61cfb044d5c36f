// Package domain holds the career-insight entities, the error taxonomy, and the ports
// implemented by adapters.
package domain

import (
	"context"
)

// CredentialKey is the fixed key under which the AI service token is persisted.
const CredentialKey = "gemini_api_key"

// QueryKind names one of the three insight queries.
type QueryKind string

const (
	QueryAnalysis  QueryKind = "analysis"
	QueryPathways  QueryKind = "pathways"
	QueryEmployers QueryKind = "employers"
)

// JobTrend is a single market trend reported by the analysis query.
type JobTrend struct {
	Name        string `json:"trendName"`
	Description string `json:"trendDescription"`
}

// SkillGap is a competency area the analysis identified. It is the input of the
// two follow-up queries.
type SkillGap struct {
	Name        string `json:"skillName" validate:"required"`
	Explanation string `json:"gapExplanation"`
}

// JobMarketAnalysis is the result of the first query.
type JobMarketAnalysis struct {
	JobTrends  []JobTrend `json:"jobTrends"`
	SkillsGaps []SkillGap `json:"skillsGaps"`
}

type OnlineCourse struct {
	Name        string `json:"courseName"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
}

type MentorshipProgram struct {
	Idea    string `json:"programIdea"`
	Details string `json:"details"`
}

type Apprenticeship struct {
	Type      string `json:"apprenticeshipType"`
	HowToFind string `json:"howToFind"`
}

// LearningPathways is the result of the pathways query for one skill.
type LearningPathways struct {
	OnlineCourses      []OnlineCourse      `json:"onlineCourses"`
	MentorshipPrograms []MentorshipProgram `json:"mentorshipPrograms"`
	Apprenticeships    []Apprenticeship    `json:"apprenticeships"`
}

type EmployerSuggestion struct {
	SectorOrCompanyType string `json:"sectorOrCompanyType"`
	Reasoning           string `json:"reasoning"`
}

// EmployerSuggestions is the result of the employer query for one skill.
type EmployerSuggestions struct {
	Suggestions []EmployerSuggestion `json:"employerSuggestions"`
}

// QueryRequest carries the inputs of a query. Community must be non-empty before
// any request fires; Area applies to the analysis, SkillName to the follow-ups.
type QueryRequest struct {
	Community string `json:"community" validate:"required,max=200"`
	Area      string `json:"areaOfInterest,omitempty" validate:"max=200"`
	SkillName string `json:"skillName,omitempty" validate:"max=200"`
}

// Ports

// TextCompleter sends a prompt to a text-generation service and returns the raw
// response text. Failures are always *APIError.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Configurable is implemented by completers that hold a credential.
type Configurable interface {
	// Configure stores the token and reports whether it was accepted (non-empty).
	Configure(token string) bool
	Configured() bool
}

// ConfigurableCompleter is the AI client adapter contract.
type ConfigurableCompleter interface {
	TextCompleter
	Configurable
}

// CredentialStore is a durable key-value store for the credential token.
type CredentialStore interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}
