package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateEntryIsTransactional(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_history").
		WithArgs("entry-1", "user-1", "Acme", "Engineer", "jd", nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO resume_history").
		WithArgs("resume-1", "entry-1", "user-1", sqlmock.AnyArg(), nil, "openai", now).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.CreateEntry(context.Background(),
		Entry{ID: "entry-1", UserID: "user-1", CompanyName: "Acme", Role: "Engineer", JobDescription: "jd", CreatedAt: now},
		ResumeRecord{ID: "resume-1", JobHistoryID: "entry-1", UserID: "user-1", Resume: sampleResume(), Provider: "openai", CreatedAt: now},
	)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListEntriesUsesContainsPatterns(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM job_history h").
		WithArgs("user-1", "%acme\\%%", "%%", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "company_name", "role", "job_description", "note", "created_at", "resume_count"}).
			AddRow("entry-1", "user-1", "Acme%", "Engineer", "jd", "note", now, 3))

	entries, err := repo.ListEntries(context.Background(), "user-1", ListFilter{Company: "acme%"})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].ResumeCount != 3 || entries[0].Note == nil || *entries[0].Note != "note" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteEntryNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM job_history").
		WithArgs("entry-1", "user-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteEntry(context.Background(), "user-2", "entry-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetResumeDecodesPayload(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	payload := `{"professionalTitle":"Engineer","personalInfo":{"name":"Jane"},"workExperiences":[{"company":"Acme","achievements":["a"]}]}`

	mock.ExpectQuery("FROM resume_history").
		WithArgs("resume-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_history_id", "user_id", "resume_data", "cost_estimate", "provider", "created_at"}).
			AddRow("resume-1", "entry-1", "user-1", []byte(payload), "0.0042", "anthropic", now))

	rec, err := repo.GetResume(context.Background(), "user-1", "resume-1")
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if rec.Resume.PersonalInfo.Name != "Jane" || rec.Resume.WorkExperiences[0].Achievements[0] != "a" {
		t.Fatalf("unexpected resume %+v", rec.Resume)
	}
	if rec.Resume.TechnicalSkills == nil || rec.Resume.Education == nil {
		t.Fatalf("expected normalized slices")
	}
	if rec.CostEstimate == nil || *rec.CostEstimate != 0.0042 {
		t.Fatalf("unexpected cost %v", rec.CostEstimate)
	}
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"":         "%%",
		" Acme ":   "%Acme%",
		"50%_off":  `%50\%\_off%`,
		`back\dir`: `%back\\dir%`,
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Fatalf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
