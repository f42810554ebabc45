package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParsedResponse is the provider-authored part of a generated resume.
type ParsedResponse struct {
	ProfessionalTitle   string
	ProfessionalSummary string
	WorkExperiences     []ParsedWork
	TechnicalSkills     []string
}

// ParsedWork carries the achievements the provider wrote for one work experience.
type ParsedWork struct {
	Company      string   `json:"company"`
	Achievements []string `json:"achievements"`
}

var requiredKeys = []string{"professionalTitle", "professionalSummary", "workExperiences", "technicalSkills"}

// Parse extracts the JSON object from a provider reply. Code fences and surrounding prose are ignored.
func Parse(raw string) (ParsedResponse, error) {
	body := stripCodeFences(raw)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return ParsedResponse{}, fmt.Errorf("%w: no JSON object in reply", ErrInvalidProviderResponse)
	}
	body = body[start : end+1]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return ParsedResponse{}, fmt.Errorf("%w: %v", ErrInvalidProviderResponse, err)
	}
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return ParsedResponse{}, fmt.Errorf("%w: missing %q", ErrInvalidProviderResponse, key)
		}
	}

	var out ParsedResponse
	decode := []struct {
		key string
		dst any
	}{
		{"professionalTitle", &out.ProfessionalTitle},
		{"professionalSummary", &out.ProfessionalSummary},
		{"workExperiences", &out.WorkExperiences},
		{"technicalSkills", &out.TechnicalSkills},
	}
	for _, d := range decode {
		if err := json.Unmarshal(fields[d.key], d.dst); err != nil {
			return ParsedResponse{}, fmt.Errorf("%w: %s: %v", ErrInvalidProviderResponse, d.key, err)
		}
	}
	return out, nil
}

// stripCodeFences removes markdown fence lines such as ```json and ```. Backticks inside the
// JSON itself are left alone; inline fences around the object are cut off by the brace scan in Parse.
func stripCodeFences(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isFenceLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isFenceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return false
	}
	for _, r := range trimmed[3:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}
