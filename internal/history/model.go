package history

import (
	"time"

	"resume-tailor/resume/model"
)

// Entry is one job a user tailored a resume for.
type Entry struct {
	ID             string
	UserID         string
	CompanyName    string
	Role           string
	JobDescription string
	Note           *string
	CreatedAt      time.Time

	// ResumeCount is filled by list queries only.
	ResumeCount int
}

// ResumeRecord is one generated resume stored under an Entry. Its payload never changes after insert.
type ResumeRecord struct {
	ID           string
	JobHistoryID string
	UserID       string
	Resume       model.GeneratedResume
	CostEstimate *float64
	Provider     string
	CreatedAt    time.Time
}

// ListFilter narrows and pages a history listing. Company and Role are case-insensitive substrings.
type ListFilter struct {
	Company string
	Role    string
	Limit   int
	Offset  int
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps paging to the supported range.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
