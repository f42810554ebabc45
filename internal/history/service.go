package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/resume/model"
)

// DeleteHook runs after an entry is deleted, with the ids of the resumes that went with it.
type DeleteHook func(ctx context.Context, userID string, resumeIDs []string)

// Service contains business logic for job and resume history.
type Service struct {
	Repo     Repo
	OnDelete DeleteHook

	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// SaveInput creates an entry together with its first resume.
type SaveInput struct {
	CompanyName    string
	Role           string
	JobDescription string
	Note           *string
	ResumeInput
}

// ResumeInput is one resume to store under an entry.
type ResumeInput struct {
	Resume       model.GeneratedResume
	Provider     string
	CostEstimate *float64
}

// Save stores a new entry and its first resume record.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Entry, ResumeRecord, error) {
	if err := s.ready(); err != nil {
		return Entry{}, ResumeRecord{}, err
	}
	jd := strings.TrimSpace(in.JobDescription)
	if jd == "" {
		return Entry{}, ResumeRecord{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}
	now := s.clock()
	entry := Entry{
		ID:             uuid.NewString(),
		UserID:         userID,
		CompanyName:    strings.TrimSpace(in.CompanyName),
		Role:           strings.TrimSpace(in.Role),
		JobDescription: jd,
		Note:           trimNote(in.Note),
		CreatedAt:      now,
	}
	record, err := s.newRecord(userID, entry.ID, now, in.ResumeInput)
	if err != nil {
		return Entry{}, ResumeRecord{}, err
	}
	if err := s.Repo.CreateEntry(ctx, entry, record); err != nil {
		return Entry{}, ResumeRecord{}, fmt.Errorf("create history entry: %w", err)
	}
	entry.ResumeCount = 1
	return entry, record, nil
}

// AppendResume stores another resume under an existing entry.
func (s *Service) AppendResume(ctx context.Context, userID, entryID string, in ResumeInput) (ResumeRecord, error) {
	if err := s.ready(); err != nil {
		return ResumeRecord{}, err
	}
	if !validID(entryID) {
		return ResumeRecord{}, ErrNotFound
	}
	record, err := s.newRecord(userID, entryID, s.clock(), in)
	if err != nil {
		return ResumeRecord{}, err
	}
	if err := s.Repo.CreateResume(ctx, record); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ResumeRecord{}, err
		}
		return ResumeRecord{}, fmt.Errorf("append resume: %w", err)
	}
	return record, nil
}

// List returns the user's entries newest first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Entry, ListFilter, error) {
	if err := s.ready(); err != nil {
		return nil, ListFilter{}, err
	}
	filter = filter.Normalize()
	entries, err := s.Repo.ListEntries(ctx, userID, filter)
	if err != nil {
		return nil, ListFilter{}, fmt.Errorf("list history: %w", err)
	}
	return entries, filter, nil
}

// Get returns the entry and its resumes, newest first.
func (s *Service) Get(ctx context.Context, userID, entryID string) (Entry, []ResumeRecord, error) {
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return Entry{}, nil, err
	}
	resumes, err := s.Repo.ListResumes(ctx, userID, entryID)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("list resumes: %w", err)
	}
	entry.ResumeCount = len(resumes)
	return entry, resumes, nil
}

// GetEntry returns a single entry owned by the user.
func (s *Service) GetEntry(ctx context.Context, userID, entryID string) (Entry, error) {
	if err := s.ready(); err != nil {
		return Entry{}, err
	}
	if !validID(entryID) {
		return Entry{}, ErrNotFound
	}
	return s.Repo.GetEntry(ctx, userID, entryID)
}

// UpdateNote sets or clears (nil or blank) the entry's note.
func (s *Service) UpdateNote(ctx context.Context, userID, entryID string, note *string) (Entry, error) {
	if err := s.ready(); err != nil {
		return Entry{}, err
	}
	if !validID(entryID) {
		return Entry{}, ErrNotFound
	}
	return s.Repo.UpdateNote(ctx, userID, entryID, trimNote(note))
}

// Delete removes the entry and all of its resumes.
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !validID(entryID) {
		return ErrNotFound
	}
	var resumeIDs []string
	if s.OnDelete != nil {
		resumes, err := s.Repo.ListResumes(ctx, userID, entryID)
		if err != nil {
			telemetry.Warn("history.delete.list_resumes_failed", map[string]any{"history_id": entryID, "error": err})
		}
		for _, rec := range resumes {
			resumeIDs = append(resumeIDs, rec.ID)
		}
	}
	if err := s.Repo.DeleteEntry(ctx, userID, entryID); err != nil {
		return err
	}
	telemetry.Info("history.deleted", map[string]any{"history_id": entryID, "user_id": userID, "resume_count": len(resumeIDs)})
	if s.OnDelete != nil && len(resumeIDs) > 0 {
		s.OnDelete(ctx, userID, resumeIDs)
	}
	return nil
}

// GetResume returns a single resume record owned by the user.
func (s *Service) GetResume(ctx context.Context, userID, resumeID string) (ResumeRecord, error) {
	if err := s.ready(); err != nil {
		return ResumeRecord{}, err
	}
	if !validID(resumeID) {
		return ResumeRecord{}, ErrNotFound
	}
	return s.Repo.GetResume(ctx, userID, resumeID)
}

func (s *Service) newRecord(userID, entryID string, now time.Time, in ResumeInput) (ResumeRecord, error) {
	provider, ok := llm.ParseProvider(in.Provider)
	if !ok {
		return ResumeRecord{}, fmt.Errorf("%w: provider must be one of openai, anthropic", ErrInvalidInput)
	}
	if err := in.Resume.Validate(); err != nil {
		return ResumeRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.CostEstimate != nil && (*in.CostEstimate < 0 || math.IsNaN(*in.CostEstimate) || math.IsInf(*in.CostEstimate, 0)) {
		return ResumeRecord{}, fmt.Errorf("%w: costEstimate must be a non-negative number", ErrInvalidInput)
	}
	return ResumeRecord{
		ID:           uuid.NewString(),
		JobHistoryID: entryID,
		UserID:       userID,
		Resume:       in.Resume.Normalize(),
		CostEstimate: in.CostEstimate,
		Provider:     string(provider),
		CreatedAt:    now,
	}, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("history repo not configured")
	}
	return nil
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
