package profiles

import (
	"time"

	"resume-tailor/resume/model"
)

// ProfileInput is the body of PUT /profile.
type ProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// WorkExperienceInput is the body for creating or replacing a work experience.
// Dates accept YYYY-MM-DD or YYYY-MM.
type WorkExperienceInput struct {
	Company   string `json:"company"`
	Position  string `json:"position"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsCurrent bool   `json:"isCurrent"`
}

// EducationInput is the body for creating or replacing an education record.
type EducationInput struct {
	University string `json:"university"`
	Degree     string `json:"degree"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// ProfileResponse is the outward-facing representation of a profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkExperienceResponse is the outward-facing representation of a work experience.
type WorkExperienceResponse struct {
	ID        string `json:"id"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	IsCurrent bool   `json:"isCurrent"`
}

// EducationResponse is the outward-facing representation of an education record.
type EducationResponse struct {
	ID         string `json:"id"`
	University string `json:"university"`
	Degree     string `json:"degree"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate,omitempty"`
}

// SnapshotResponse is the body of GET /profile.
type SnapshotResponse struct {
	Profile         ProfileResponse          `json:"profile"`
	WorkExperiences []WorkExperienceResponse `json:"workExperiences"`
	Educations      []EducationResponse      `json:"educations"`
}

func toProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Location:  p.Location,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toWorkExperienceResponse(exp WorkExperience) WorkExperienceResponse {
	return WorkExperienceResponse{
		ID:        exp.ID,
		Company:   exp.Company,
		Position:  exp.Position,
		StartDate: model.FormatDate(&exp.StartDate),
		EndDate:   model.FormatDate(exp.EndDate),
		IsCurrent: exp.IsCurrent,
	}
}

func toEducationResponse(edu Education) EducationResponse {
	return EducationResponse{
		ID:         edu.ID,
		University: edu.University,
		Degree:     edu.Degree,
		StartDate:  model.FormatDate(&edu.StartDate),
		EndDate:    model.FormatDate(edu.EndDate),
	}
}

func toSnapshotResponse(snap Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Profile:         toProfileResponse(snap.Profile),
		WorkExperiences: make([]WorkExperienceResponse, 0, len(snap.WorkExperiences)),
		Educations:      make([]EducationResponse, 0, len(snap.Educations)),
	}
	for _, exp := range snap.WorkExperiences {
		resp.WorkExperiences = append(resp.WorkExperiences, toWorkExperienceResponse(exp))
	}
	for _, edu := range snap.Educations {
		resp.Educations = append(resp.Educations, toEducationResponse(edu))
	}
	return resp
}
