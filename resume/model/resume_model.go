package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for every date carried in a GeneratedResume.
const DateLayout = "2006-01-02"

// GeneratedResume is the tailored resume returned by generation and stored in resume history.
type GeneratedResume struct {
	ProfessionalTitle   string           `json:"professionalTitle"`
	ProfessionalSummary string           `json:"professionalSummary"`
	WorkExperiences     []WorkExperience `json:"workExperiences"`
	TechnicalSkills     []string         `json:"technicalSkills"`
	PersonalInfo        PersonalInfo     `json:"personalInfo"`
	Education           []Education      `json:"education"`
}

// PersonalInfo is the contact header of the resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// WorkExperience is one work block. Everything except Achievements is copied from storage.
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	IsCurrent    bool     `json:"isCurrent"`
	Achievements []string `json:"achievements"`
}

// Education is one education block.
type Education struct {
	University string `json:"university"`
	Degree     string `json:"degree"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// Validate checks the fields exporters and history rely on.
func (r GeneratedResume) Validate() error {
	if strings.TrimSpace(r.PersonalInfo.Name) == "" {
		return errors.New("personalInfo.name is required")
	}
	for i, exp := range r.WorkExperiences {
		if err := validateDate(exp.StartDate, fmt.Sprintf("workExperiences[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDate(exp.EndDate, fmt.Sprintf("workExperiences[%d].endDate", i)); err != nil {
			return err
		}
	}
	for i, edu := range r.Education {
		if err := validateDate(edu.StartDate, fmt.Sprintf("education[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDate(edu.EndDate, fmt.Sprintf("education[%d].endDate", i)); err != nil {
			return err
		}
	}
	return nil
}

// Normalize replaces nil slices with empty ones so the JSON form always carries arrays.
func (r GeneratedResume) Normalize() GeneratedResume {
	if r.WorkExperiences == nil {
		r.WorkExperiences = []WorkExperience{}
	}
	for i := range r.WorkExperiences {
		if r.WorkExperiences[i].Achievements == nil {
			r.WorkExperiences[i].Achievements = []string{}
		}
	}
	if r.TechnicalSkills == nil {
		r.TechnicalSkills = []string{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	return r
}

// FormatDate renders t in DateLayout, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or YYYY-MM. YYYY-MM resolves to the first of the month.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or YYYY-MM", value)
}

func validateDate(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := ParseDate(value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}
