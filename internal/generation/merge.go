package generation

import (
	"strings"

	"resume-tailor/internal/profiles"
	"resume-tailor/resume/model"
)

// Merge combines stored profile data with the provider's text. Everything factual comes from the
// snapshot; the provider only contributes title, summary, achievements and skills. Achievements are
// aligned by index: missing entries become empty lists and extra entries are dropped.
func Merge(snap profiles.Snapshot, parsed ParsedResponse) model.GeneratedResume {
	out := model.GeneratedResume{
		ProfessionalTitle:   strings.TrimSpace(parsed.ProfessionalTitle),
		ProfessionalSummary: strings.TrimSpace(parsed.ProfessionalSummary),
		TechnicalSkills:     nonBlank(parsed.TechnicalSkills),
		PersonalInfo: model.PersonalInfo{
			Name:     snap.Profile.Name,
			Email:    snap.Profile.Email,
			Phone:    snap.Profile.Phone,
			Location: snap.Profile.Location,
		},
		WorkExperiences: make([]model.WorkExperience, 0, len(snap.WorkExperiences)),
		Education:       make([]model.Education, 0, len(snap.Educations)),
	}

	for i, exp := range snap.WorkExperiences {
		achievements := []string{}
		if i < len(parsed.WorkExperiences) {
			achievements = nonBlank(parsed.WorkExperiences[i].Achievements)
		}
		end := ""
		if !exp.IsCurrent {
			end = model.FormatDate(exp.EndDate)
		}
		out.WorkExperiences = append(out.WorkExperiences, model.WorkExperience{
			Company:      exp.Company,
			Position:     exp.Position,
			StartDate:    model.FormatDate(&exp.StartDate),
			EndDate:      end,
			IsCurrent:    exp.IsCurrent,
			Achievements: achievements,
		})
	}

	for _, edu := range snap.Educations {
		out.Education = append(out.Education, model.Education{
			University: edu.University,
			Degree:     edu.Degree,
			StartDate:  model.FormatDate(&edu.StartDate),
			EndDate:    model.FormatDate(edu.EndDate),
		})
	}
	return out
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
