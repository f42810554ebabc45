package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-tailor/resume/model"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const insertResumeQuery = `
INSERT INTO resume_history (id, job_history_id, user_id, resume_data, cost_estimate, provider, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertResume(ctx context.Context, db execer, record ResumeRecord) error {
	payload, err := json.Marshal(record.Resume.Normalize())
	if err != nil {
		return fmt.Errorf("encode resume data: %w", err)
	}
	_, err = db.ExecContext(ctx, insertResumeQuery,
		record.ID,
		record.JobHistoryID,
		record.UserID,
		string(payload),
		nullableFloat(record.CostEstimate),
		record.Provider,
		record.CreatedAt,
	)
	return err
}

// CreateEntry inserts the entry and its first resume in one transaction.
func (r *PGRepo) CreateEntry(ctx context.Context, entry Entry, first ResumeRecord) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const query = `
INSERT INTO job_history (id, user_id, company_name, role, job_description, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err = tx.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.CompanyName,
		entry.Role,
		entry.JobDescription,
		nullableString(entry.Note),
		entry.CreatedAt,
	); err != nil {
		return err
	}
	if err = insertResume(ctx, tx, first); err != nil {
		return err
	}
	return tx.Commit()
}

// ListEntries returns entries newest first with their resume counts.
func (r *PGRepo) ListEntries(ctx context.Context, userID string, filter ListFilter) ([]Entry, error) {
	filter = filter.Normalize()
	const query = `
SELECT h.id, h.user_id, h.company_name, h.role, h.job_description, h.note, h.created_at,
       (SELECT COUNT(*) FROM resume_history r WHERE r.job_history_id = h.id) AS resume_count
FROM job_history h
WHERE h.user_id = $1
  AND h.company_name ILIKE $2
  AND h.role ILIKE $3
ORDER BY h.created_at DESC, h.id DESC
LIMIT $4 OFFSET $5`

	rows, err := r.DB.QueryContext(ctx, query,
		userID,
		containsPattern(filter.Company),
		containsPattern(filter.Role),
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		var note sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CompanyName,
			&entry.Role,
			&entry.JobDescription,
			&note,
			&entry.CreatedAt,
			&entry.ResumeCount,
		); err != nil {
			return nil, err
		}
		entry.Note = stringPtr(note)
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetEntry(ctx context.Context, userID, entryID string) (Entry, error) {
	const query = `
SELECT id, user_id, company_name, role, job_description, note, created_at
FROM job_history
WHERE id = $1 AND user_id = $2`
	var entry Entry
	var note sql.NullString
	err := r.DB.QueryRowContext(ctx, query, entryID, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CompanyName,
		&entry.Role,
		&entry.JobDescription,
		&note,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	entry.Note = stringPtr(note)
	return entry, nil
}

func (r *PGRepo) UpdateNote(ctx context.Context, userID, entryID string, note *string) (Entry, error) {
	const query = `
UPDATE job_history SET note = $1
WHERE id = $2 AND user_id = $3`
	res, err := r.DB.ExecContext(ctx, query, nullableString(note), entryID, userID)
	if err != nil {
		return Entry{}, err
	}
	if err := requireAffected(res); err != nil {
		return Entry{}, err
	}
	return r.GetEntry(ctx, userID, entryID)
}

// DeleteEntry relies on ON DELETE CASCADE to remove resume_history rows.
func (r *PGRepo) DeleteEntry(ctx context.Context, userID, entryID string) error {
	const query = `DELETE FROM job_history WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) CreateResume(ctx context.Context, record ResumeRecord) error {
	if _, err := r.GetEntry(ctx, record.UserID, record.JobHistoryID); err != nil {
		return err
	}
	return insertResume(ctx, r.DB, record)
}

func (r *PGRepo) ListResumes(ctx context.Context, userID, entryID string) ([]ResumeRecord, error) {
	const query = `
SELECT id, job_history_id, user_id, resume_data, cost_estimate, provider, created_at
FROM resume_history
WHERE job_history_id = $1 AND user_id = $2
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, entryID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ResumeRecord, 0)
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetResume(ctx context.Context, userID, resumeID string) (ResumeRecord, error) {
	const query = `
SELECT id, job_history_id, user_id, resume_data, cost_estimate, provider, created_at
FROM resume_history
WHERE id = $1 AND user_id = $2`
	rec, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResumeRecord{}, ErrNotFound
		}
		return ResumeRecord{}, err
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResume(row scanner) (ResumeRecord, error) {
	var (
		rec  ResumeRecord
		data []byte
		cost sql.NullFloat64
	)
	if err := row.Scan(&rec.ID, &rec.JobHistoryID, &rec.UserID, &data, &cost, &rec.Provider, &rec.CreatedAt); err != nil {
		return ResumeRecord{}, err
	}
	var resume model.GeneratedResume
	if err := json.Unmarshal(data, &resume); err != nil {
		return ResumeRecord{}, fmt.Errorf("decode resume data %s: %w", rec.ID, err)
	}
	rec.Resume = resume.Normalize()
	if cost.Valid {
		v := cost.Float64
		rec.CostEstimate = &v
	}
	return rec, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// containsPattern builds an ILIKE pattern; an empty needle matches everything.
func containsPattern(needle string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(needle))
	return "%" + escaped + "%"
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

var _ Repo = (*PGRepo)(nil)
