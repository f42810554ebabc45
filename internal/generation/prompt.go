package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"resume-tailor/internal/profiles"
	"resume-tailor/resume/model"
	"resume-tailor/resume/render"
)

// Achievement contract for the ATS prompt.
const (
	DefaultAchievements = 4
	MinAchievements     = 3
	MinWords            = 20
	MaxWords            = 30
)

//go:embed prompts/ats.tmpl
var atsPromptText string

var atsPrompt = template.Must(template.New("ats").Parse(atsPromptText))

type promptWork struct {
	Index    int
	Company  string
	Position string
	Dates    string
}

type promptEducation struct {
	University string
	Degree     string
	Dates      string
}

type promptData struct {
	JobDescription string
	Personal       profiles.Profile
	Work           []promptWork
	Education      []promptEducation
	Achievements   int
	MinWords       int
	MaxWords       int
}

// BuildPrompt renders the ATS-optimized generation prompt for a profile snapshot.
func BuildPrompt(snap profiles.Snapshot, jobDescription string, achievements int) (string, error) {
	if achievements < MinAchievements {
		achievements = MinAchievements
	}
	data := promptData{
		JobDescription: strings.TrimSpace(jobDescription),
		Personal:       snap.Profile,
		Achievements:   achievements,
		MinWords:       MinWords,
		MaxWords:       MaxWords,
	}
	for i, exp := range snap.WorkExperiences {
		data.Work = append(data.Work, promptWork{
			Index:    i + 1,
			Company:  exp.Company,
			Position: exp.Position,
			Dates:    render.DateRange(model.FormatDate(&exp.StartDate), model.FormatDate(exp.EndDate), exp.IsCurrent),
		})
	}
	for _, edu := range snap.Educations {
		data.Education = append(data.Education, promptEducation{
			University: edu.University,
			Degree:     edu.Degree,
			Dates:      render.DateRange(model.FormatDate(&edu.StartDate), model.FormatDate(edu.EndDate), false),
		})
	}

	var buf bytes.Buffer
	if err := atsPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
