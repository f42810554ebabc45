package history

import "context"

// Repo persists job history entries and their resume records.
type Repo interface {
	// CreateEntry inserts the entry and its first resume record atomically.
	CreateEntry(ctx context.Context, entry Entry, first ResumeRecord) error
	ListEntries(ctx context.Context, userID string, filter ListFilter) ([]Entry, error)
	GetEntry(ctx context.Context, userID, entryID string) (Entry, error)
	UpdateNote(ctx context.Context, userID, entryID string, note *string) (Entry, error)
	// DeleteEntry removes the entry and every resume record under it.
	DeleteEntry(ctx context.Context, userID, entryID string) error

	CreateResume(ctx context.Context, record ResumeRecord) error
	ListResumes(ctx context.Context, userID, entryID string) ([]ResumeRecord, error)
	GetResume(ctx context.Context, userID, resumeID string) (ResumeRecord, error)
}
