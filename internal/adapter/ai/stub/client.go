// Package stub provides a deterministic offline completer for local runs and tests.
//
// Replies are well-formed JSON in the shape the navigator queries expect,
// chosen by looking at the prompt. Selected with AI_PROVIDER=stub.
package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

var (
	communityRe = regexp.MustCompile(`(?:skills gaps in|individual in|someone in) (.+?)(?: focusing on | looking to | with demonstrated |\.)`)
	skillRe     = regexp.MustCompile(`skills in "([^"]+)"`)
)

// Client is a fast, deterministic completer. It honours Configure like the real
// adapter so credential flows behave the same offline.
type Client struct {
	// Latency simulates a little processing time.
	Latency time.Duration

	mu    sync.RWMutex
	token string
}

var _ domain.ConfigurableCompleter = (*Client)(nil)

// New returns a stub client that accepts any non-empty token.
func New() *Client { return &Client{} }

// Configure stores the trimmed token.
func (c *Client) Configure(token string) bool {
	token = strings.TrimSpace(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	return token != ""
}

// Configured reports whether a token is set.
func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Complete returns a fenced JSON reply matching the query the prompt asks for.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", domain.NewAPIError(domain.KindConfig, domain.MsgNotConfigured, "")
	}
	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return "", domain.NewAPIError(domain.KindTransport, domain.MsgTransportFailed, ctx.Err().Error())
		}
	}

	community := "your community"
	if m := communityRe.FindStringSubmatch(prompt); m != nil {
		community = m[1]
	}
	skill := "the selected skill"
	if m := skillRe.FindStringSubmatch(prompt); m != nil {
		skill = m[1]
	}

	var payload any
	switch {
	case strings.Contains(prompt, "acquire skills in"):
		payload = pathways(skill)
	case strings.Contains(prompt, "demonstrated skills in"):
		payload = employers(community, skill)
	default:
		payload = analysis(community)
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return "```json\n" + string(b) + "\n```", nil
}

func analysis(community string) domain.JobMarketAnalysis {
	return domain.JobMarketAnalysis{
		JobTrends: []domain.JobTrend{
			{Name: "Clean Energy Buildout", Description: fmt.Sprintf("Utilities and installers in %s are expanding solar and storage capacity.", community)},
			{Name: "Applied AI Adoption", Description: "Local employers are piloting AI tooling across operations and support."},
		},
		SkillsGaps: []domain.SkillGap{
			{Name: "Solar PV Installation", Explanation: "Installer demand outpaces certified technicians."},
			{Name: "Data Analysis with Python", Explanation: "Few mid-career workers can turn operational data into decisions."},
			{Name: "Cybersecurity for IoT", Explanation: "Connected devices are spreading faster than the people securing them."},
		},
	}
}

func pathways(skill string) domain.LearningPathways {
	return domain.LearningPathways{
		OnlineCourses: []domain.OnlineCourse{
			{Name: "Foundations of " + skill, Platform: "Coursera", Description: "A self-paced introduction with graded projects."},
			{Name: "Advanced " + skill + " Bootcamp", Platform: "Udemy", Description: "Hands-on labs for practitioners."},
		},
		MentorshipPrograms: []domain.MentorshipProgram{
			{Idea: "Industry mentor circles", Details: "Monthly small-group sessions with local practitioners in " + skill + "."},
		},
		Apprenticeships: []domain.Apprenticeship{
			{Type: skill + " apprentice", HowToFind: "Check trade unions, community colleges and state workforce boards."},
		},
	}
}

func employers(community, skill string) domain.EmployerSuggestions {
	return domain.EmployerSuggestions{
		Suggestions: []domain.EmployerSuggestion{
			{SectorOrCompanyType: "Regional utilities in " + community, Reasoning: "Grid modernization budgets need " + skill + " talent."},
			{SectorOrCompanyType: "Specialist contractors", Reasoning: "Contractors bid on projects that require certified " + skill + " staff."},
		},
	}
}
