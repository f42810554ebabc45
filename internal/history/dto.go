package history

import (
	"time"

	"resume-tailor/resume/model"
)

// CreateRequest is the body of POST /history.
type CreateRequest struct {
	CompanyName    string                `json:"companyName"`
	Role           string                `json:"role"`
	JobDescription string                `json:"jobDescription"`
	Note           *string               `json:"note"`
	Resume         model.GeneratedResume `json:"resume"`
	Provider       string                `json:"provider"`
	CostEstimate   *float64              `json:"costEstimate"`
}

// AppendRequest is the body of POST /history/:id/resumes.
type AppendRequest struct {
	Resume       model.GeneratedResume `json:"resume"`
	Provider     string                `json:"provider"`
	CostEstimate *float64              `json:"costEstimate"`
}

// NoteRequest is the body of PATCH /history/:id.
type NoteRequest struct {
	Note *string `json:"note"`
}

type EntryResponse struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"companyName"`
	Role           string    `json:"role"`
	JobDescription string    `json:"jobDescription"`
	Note           *string   `json:"note"`
	CreatedAt      time.Time `json:"createdAt"`
	ResumeCount    int       `json:"resumeCount"`
}

type ResumeResponse struct {
	ID           string                `json:"id"`
	JobHistoryID string                `json:"jobHistoryId"`
	ResumeData   model.GeneratedResume `json:"resumeData"`
	CostEstimate *float64              `json:"costEstimate"`
	Provider     string                `json:"provider"`
	CreatedAt    time.Time             `json:"createdAt"`
}

type DetailResponse struct {
	EntryResponse
	Resumes []ResumeResponse `json:"resumes"`
}

type ListResponse struct {
	Items  []EntryResponse `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type CreateResponse struct {
	Entry  EntryResponse  `json:"entry"`
	Resume ResumeResponse `json:"resume"`
}

func toEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:             e.ID,
		CompanyName:    e.CompanyName,
		Role:           e.Role,
		JobDescription: e.JobDescription,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
		ResumeCount:    e.ResumeCount,
	}
}

func toResumeResponse(r ResumeRecord) ResumeResponse {
	return ResumeResponse{
		ID:           r.ID,
		JobHistoryID: r.JobHistoryID,
		ResumeData:   r.Resume.Normalize(),
		CostEstimate: r.CostEstimate,
		Provider:     r.Provider,
		CreatedAt:    r.CreatedAt,
	}
}
