// Package ai provides the response parser and the decorators wrapped around the
// text completion adapter.
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// Parse failure message; structure failures use "Received invalid data structure for <schema>".
const MsgParseFailed = "Failed to parse JSON"

// snippetLen is how much of the raw response is echoed back in parse errors.
const snippetLen = 100

var fenceRegex = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

// Schema names the array-valued keys a query result must carry.
type Schema struct {
	Name     string
	Required []string
}

var (
	AnalysisSchema  = Schema{Name: "job market analysis", Required: []string{"jobTrends", "skillsGaps"}}
	PathwaysSchema  = Schema{Name: "learning pathways", Required: []string{"onlineCourses", "mentorshipPrograms", "apprenticeships"}}
	EmployersSchema = Schema{Name: "employer suggestions", Required: []string{"employerSuggestions"}}
)

// StripFences removes a leading/trailing triple-backtick block, optionally tagged
// "json". Unfenced input is returned trimmed.
func StripFences(response string) string {
	s := strings.TrimSpace(response)
	if m := fenceRegex.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	return s
}

// Parse decodes raw model output into T. The check is two-staged: syntactic (valid
// JSON after fence stripping) then structural (every required key is an array).
// The returned error is always *domain.APIError.
func Parse[T any](raw string, schema Schema) (T, error) {
	var zero T
	body := []byte(StripFences(raw))

	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return zero, domain.NewAPIError(domain.KindParse, MsgParseFailed,
			fmt.Sprintf("%s. Response was: %s...", err.Error(), truncate(raw, snippetLen)))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return zero, schema.invalid("")
	}
	for _, key := range schema.Required {
		v, ok := fields[key]
		if !ok || !isArray(v) {
			return zero, schema.invalid("")
		}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, schema.invalid(err.Error())
	}
	return out, nil
}

func (s Schema) invalid(reason string) *domain.APIError {
	details := s.expected()
	if reason != "" {
		details += " " + reason
	}
	return domain.NewAPIError(domain.KindStructure, "Received invalid data structure for "+s.Name+".", details)
}

// expected renders "Expected 'a', 'b', and 'c' arrays."
func (s Schema) expected() string {
	quoted := make([]string, len(s.Required))
	for i, k := range s.Required {
		quoted[i] = "'" + k + "'"
	}
	switch len(quoted) {
	case 0:
		return "Expected a JSON object."
	case 1:
		return fmt.Sprintf("Expected %s array.", quoted[0])
	case 2:
		return fmt.Sprintf("Expected %s and %s arrays.", quoted[0], quoted[1])
	default:
		return fmt.Sprintf("Expected %s, and %s arrays.", strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
	}
}

func isArray(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '['
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
