package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-tailor/resume/model"
)

func sampleResume() model.GeneratedResume {
	return model.GeneratedResume{
		ProfessionalTitle: "Backend Engineer",
		PersonalInfo:      model.PersonalInfo{Name: "Jane Doe"},
		WorkExperiences: []model.WorkExperience{
			{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01", Achievements: []string{"Shipped it"}},
		},
	}
}

// newTestService returns a service whose clock advances one second per call.
func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	base := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, repo
}

func save(t *testing.T, svc *Service, userID, company, role string) (Entry, ResumeRecord) {
	t.Helper()
	cost := 0.0123
	entry, record, err := svc.Save(context.Background(), userID, SaveInput{
		CompanyName:    company,
		Role:           role,
		JobDescription: "Build APIs in Go",
		ResumeInput:    ResumeInput{Resume: sampleResume(), Provider: "openai", CostEstimate: &cost},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	return entry, record
}

func TestDeleteCascadesToResumes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	entry, first := save(t, svc, "user-1", "Acme", "Engineer")
	if _, err := svc.AppendResume(ctx, "user-1", entry.ID, ResumeInput{Resume: sampleResume(), Provider: "anthropic"}); err != nil {
		t.Fatalf("AppendResume: %v", err)
	}
	other, _ := save(t, svc, "user-1", "Globex", "Lead")

	var purged []string
	svc.OnDelete = func(_ context.Context, userID string, resumeIDs []string) {
		purged = append(purged, resumeIDs...)
	}

	if err := svc.Delete(ctx, "user-1", entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	remaining, err := repo.ListResumes(ctx, "user-1", entry.ID)
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected cascade to remove resumes, got %d", len(remaining))
	}
	if _, err := svc.GetResume(ctx, "user-1", first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted resume to be gone, got %v", err)
	}
	if len(purged) != 2 {
		t.Fatalf("expected delete hook with 2 resume ids, got %v", purged)
	}
	if _, resumes, err := svc.Get(ctx, "user-1", other.ID); err != nil || len(resumes) != 1 {
		t.Fatalf("unrelated entry affected: %v %d", err, len(resumes))
	}
}

func TestGetListsResumesNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	entry, first := save(t, svc, "user-1", "Acme", "Engineer")
	second, err := svc.AppendResume(ctx, "user-1", entry.ID, ResumeInput{Resume: sampleResume(), Provider: "anthropic"})
	if err != nil {
		t.Fatalf("AppendResume: %v", err)
	}

	got, resumes, err := svc.Get(ctx, "user-1", entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ResumeCount != 2 || len(resumes) != 2 || resumes[0].ID != second.ID || resumes[1].ID != first.ID {
		t.Fatalf("unexpected order %+v", resumes)
	}
	if resumes[1].CostEstimate == nil || *resumes[1].CostEstimate != 0.0123 {
		t.Fatalf("cost estimate not stored: %+v", resumes[1].CostEstimate)
	}
}

func TestListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	save(t, svc, "user-1", "Acme Corp", "Backend Engineer")
	save(t, svc, "user-1", "Globex", "Frontend Engineer")
	newest, _ := save(t, svc, "user-1", "ACME Labs", "Staff Engineer")
	save(t, svc, "user-2", "Acme Corp", "Backend Engineer")

	entries, applied, err := svc.List(ctx, "user-1", ListFilter{Company: "acme"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if applied.Limit != DefaultLimit || len(entries) != 2 || entries[0].ID != newest.ID {
		t.Fatalf("unexpected company filter result %+v", entries)
	}
	if entries[0].ResumeCount != 1 {
		t.Fatalf("expected resume count, got %d", entries[0].ResumeCount)
	}

	entries, _, _ = svc.List(ctx, "user-1", ListFilter{Role: "ENGINEER", Limit: 1, Offset: 1})
	if len(entries) != 1 || entries[0].CompanyName != "Globex" {
		t.Fatalf("unexpected page %+v", entries)
	}

	_, applied, _ = svc.List(ctx, "user-1", ListFilter{Limit: 1000, Offset: -3})
	if applied.Limit != MaxLimit || applied.Offset != 0 {
		t.Fatalf("expected clamped paging, got %+v", applied)
	}
}

func TestOwnershipIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	entry, record := save(t, svc, "user-1", "Acme", "Engineer")

	if _, _, err := svc.Get(ctx, "user-2", entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetResume(ctx, "user-2", record.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "user-2", entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.AppendResume(ctx, "user-2", entry.ID, ResumeInput{Resume: sampleResume(), Provider: "openai"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetEntry(ctx, "user-1", "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestSaveValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   SaveInput
	}{
		{name: "blank job description", in: SaveInput{JobDescription: "  ", ResumeInput: ResumeInput{Resume: sampleResume(), Provider: "openai"}}},
		{name: "unknown provider", in: SaveInput{JobDescription: "jd", ResumeInput: ResumeInput{Resume: sampleResume(), Provider: "gemini"}}},
		{name: "missing name", in: SaveInput{JobDescription: "jd", ResumeInput: ResumeInput{Provider: "openai"}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Save(ctx, "user-1", tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestUpdateNoteClearsBlank(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	entry, _ := save(t, svc, "user-1", "Acme", "Engineer")

	note := " follow up friday "
	got, err := svc.UpdateNote(ctx, "user-1", entry.ID, &note)
	if err != nil || got.Note == nil || *got.Note != "follow up friday" {
		t.Fatalf("UpdateNote = %+v, %v", got.Note, err)
	}
	blank := ""
	got, err = svc.UpdateNote(ctx, "user-1", entry.ID, &blank)
	if err != nil || got.Note != nil {
		t.Fatalf("expected cleared note, got %+v, %v", got.Note, err)
	}
}
