package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
)

// Empty-section texts.
const (
	NoJobTrends       = "No specific job trends identified for this query."
	NoSkillGaps       = "No specific skill gaps identified for this query."
	NoOnlineCourses   = "No online courses suggested for this skill."
	NoMentorships     = "No mentorship programs suggested for this skill."
	NoApprenticeships = "No apprenticeships suggested for this skill."
	NoEmployers       = "No specific employer suggestions found for this skill in the specified community."
)

// Renderer turns results into card text. Width 0 disables wrapping.
type Renderer struct {
	Styles Styles
	Width  int
}

// NewRenderer returns a renderer with the default styles.
func NewRenderer(width int) Renderer {
	return Renderer{Styles: DefaultStyles(), Width: width}
}

// Card renders a bordered block with a bold title and a body.
func (r Renderer) Card(title, body string) string {
	st := r.Styles.Card
	if r.Width > 0 {
		st = st.Width(r.Width - 2)
	}
	content := r.Styles.Title.Render(title)
	if body != "" {
		content += "\n" + r.Styles.Body.Render(body)
	}
	return st.Render(content)
}

func (r Renderer) section(title string) string {
	return r.Styles.Section.Render(title)
}

func (r Renderer) empty(text string) string {
	return r.Styles.Muted.Render(text)
}

// Analysis renders the trends and numbered skill gaps. The numbers are what
// the explore commands take.
func (r Renderer) Analysis(community, area string, a *domain.JobMarketAnalysis) string {
	if a == nil {
		return ""
	}
	title := "Skills Landscape: " + community
	if area != "" {
		title += " • " + area
	}
	var b strings.Builder
	b.WriteString(r.section(title))
	b.WriteString("\n")
	b.WriteString(r.Styles.Heading.Render("Market Trends & Insights"))
	b.WriteString("\n")
	if len(a.JobTrends) == 0 {
		b.WriteString(r.empty(NoJobTrends))
		b.WriteString("\n")
	}
	for _, t := range a.JobTrends {
		b.WriteString(r.Card(t.Name, t.Description))
		b.WriteString("\n")
	}
	b.WriteString(r.Styles.Heading.Render("High-Impact Skills Gaps"))
	b.WriteString("\n")
	if len(a.SkillsGaps) == 0 {
		b.WriteString(r.empty(NoSkillGaps))
		b.WriteString("\n")
	}
	for i, g := range a.SkillsGaps {
		b.WriteString(r.Card(fmt.Sprintf("%s %s", r.Styles.Badge.Render(fmt.Sprintf("[%d]", i+1)), g.Name), g.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

// Pathways renders courses, mentorship ideas and apprenticeships for skill.
func (r Renderer) Pathways(skill string, lp *domain.LearningPathways) string {
	if lp == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.section("Learning Pathways: " + skill))
	b.WriteString("\n")

	b.WriteString(r.Styles.Heading.Render("Online Courses & Certifications"))
	b.WriteString("\n")
	if len(lp.OnlineCourses) == 0 {
		b.WriteString(r.empty(NoOnlineCourses) + "\n")
	}
	for _, c := range lp.OnlineCourses {
		body := c.Description
		if c.Platform != "" {
			body = r.Styles.Badge.Render(c.Platform) + "\n" + body
		}
		b.WriteString(r.Card(c.Name, body) + "\n")
	}

	b.WriteString(r.Styles.Heading.Render("Mentorship & Networking"))
	b.WriteString("\n")
	if len(lp.MentorshipPrograms) == 0 {
		b.WriteString(r.empty(NoMentorships) + "\n")
	}
	for _, m := range lp.MentorshipPrograms {
		b.WriteString(r.Card(m.Idea, m.Details) + "\n")
	}

	b.WriteString(r.Styles.Heading.Render("Apprenticeships & Hands-on Experience"))
	b.WriteString("\n")
	if len(lp.Apprenticeships) == 0 {
		b.WriteString(r.empty(NoApprenticeships) + "\n")
	}
	for _, a := range lp.Apprenticeships {
		b.WriteString(r.Card(a.Type, a.HowToFind) + "\n")
	}
	return b.String()
}

// Employers renders employer sectors for skill in community.
func (r Renderer) Employers(skill, community string, es *domain.EmployerSuggestions) string {
	if es == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.section(fmt.Sprintf("Career Opportunities: %s in %s", skill, community)))
	b.WriteString("\n")
	if len(es.Suggestions) == 0 {
		b.WriteString(r.empty(NoEmployers) + "\n")
	}
	for _, s := range es.Suggestions {
		b.WriteString(r.Card(s.SectorOrCompanyType, s.Reasoning) + "\n")
	}
	return b.String()
}

// Error renders a failure with its details and the retry hint.
func (r Renderer) Error(e *domain.APIError) string {
	if e == nil {
		return ""
	}
	body := e.Message
	if e.Details != "" {
		body += "\n" + r.Styles.Muted.Render(e.Details)
	}
	body += "\n" + r.Styles.Muted.Render("Type 'retry' to try again.")
	st := r.Styles.ErrorBox
	if r.Width > 0 {
		st = st.Width(r.Width - 2)
	}
	return st.Render(lipgloss.JoinVertical(lipgloss.Left, r.Styles.Error.Render("Something went wrong"), body))
}

// Snapshot renders whatever the session currently shows. Results are hidden
// while an error is displayed.
func (r Renderer) Snapshot(s session.Snapshot) string {
	switch {
	case s.Loading:
		return r.Styles.Muted.Render("Analyzing market trends and opportunities...")
	case s.Error != nil:
		return r.Error(s.Error)
	case s.Analysis == nil:
		return r.Styles.Muted.Render("Enter a community to start, e.g. 'search Austin, TX | renewable energy'.")
	}
	parts := []string{r.Analysis(s.Community, s.Area, s.Analysis)}
	if s.SelectedSkill != nil {
		if s.Pathways != nil {
			parts = append(parts, r.Pathways(s.SelectedSkill.Name, s.Pathways))
		}
		if s.Employers != nil {
			parts = append(parts, r.Employers(s.SelectedSkill.Name, s.Community, s.Employers))
		}
	}
	return strings.Join(parts, "\n")
}
