package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT id, user_id, name, email, phone, location, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Location,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

// UpsertProfile inserts or updates by user_id and returns the stored row.
func (r *PGRepo) UpsertProfile(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
INSERT INTO profiles (id, user_id, name, email, phone, location, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  email = EXCLUDED.email,
  phone = EXCLUDED.phone,
  location = EXCLUDED.location,
  updated_at = now()
RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.Phone,
		profile.Location,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (r *PGRepo) ListWorkExperiences(ctx context.Context, profileID string) ([]WorkExperience, error) {
	const query = `
SELECT id, profile_id, company, position, start_date, end_date, is_current, created_at
FROM work_experiences
WHERE profile_id = $1
ORDER BY start_date DESC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WorkExperience, 0)
	for rows.Next() {
		var exp WorkExperience
		var endDate sql.NullTime
		if err := rows.Scan(
			&exp.ID,
			&exp.ProfileID,
			&exp.Company,
			&exp.Position,
			&exp.StartDate,
			&endDate,
			&exp.IsCurrent,
			&exp.CreatedAt,
		); err != nil {
			return nil, err
		}
		exp.EndDate = timePtr(endDate)
		out = append(out, exp)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateWorkExperience(ctx context.Context, exp WorkExperience) error {
	const query = `
INSERT INTO work_experiences (id, profile_id, company, position, start_date, end_date, is_current, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.DB.ExecContext(ctx, query,
		exp.ID,
		exp.ProfileID,
		exp.Company,
		exp.Position,
		exp.StartDate,
		nullableTime(exp.EndDate),
		exp.IsCurrent,
	)
	return err
}

func (r *PGRepo) UpdateWorkExperience(ctx context.Context, exp WorkExperience) error {
	const query = `
UPDATE work_experiences
SET company = $3, position = $4, start_date = $5, end_date = $6, is_current = $7
WHERE id = $1 AND profile_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		exp.ID,
		exp.ProfileID,
		exp.Company,
		exp.Position,
		exp.StartDate,
		nullableTime(exp.EndDate),
		exp.IsCurrent,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) DeleteWorkExperience(ctx context.Context, profileID, id string) error {
	const query = `DELETE FROM work_experiences WHERE id = $1 AND profile_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, profileID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) ListEducations(ctx context.Context, profileID string) ([]Education, error) {
	const query = `
SELECT id, profile_id, university, degree, start_date, end_date, created_at
FROM educations
WHERE profile_id = $1
ORDER BY start_date DESC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Education, 0)
	for rows.Next() {
		var edu Education
		var endDate sql.NullTime
		if err := rows.Scan(
			&edu.ID,
			&edu.ProfileID,
			&edu.University,
			&edu.Degree,
			&edu.StartDate,
			&endDate,
			&edu.CreatedAt,
		); err != nil {
			return nil, err
		}
		edu.EndDate = timePtr(endDate)
		out = append(out, edu)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateEducation(ctx context.Context, edu Education) error {
	const query = `
INSERT INTO educations (id, profile_id, university, degree, start_date, end_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	_, err := r.DB.ExecContext(ctx, query,
		edu.ID,
		edu.ProfileID,
		edu.University,
		edu.Degree,
		edu.StartDate,
		nullableTime(edu.EndDate),
	)
	return err
}

func (r *PGRepo) UpdateEducation(ctx context.Context, edu Education) error {
	const query = `
UPDATE educations
SET university = $3, degree = $4, start_date = $5, end_date = $6
WHERE id = $1 AND profile_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		edu.ID,
		edu.ProfileID,
		edu.University,
		edu.Degree,
		edu.StartDate,
		nullableTime(edu.EndDate),
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) DeleteEducation(ctx context.Context, profileID, id string) error {
	const query = `DELETE FROM educations WHERE id = $1 AND profile_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, profileID)
	if err != nil {
		return err
	}
	return requireAffected(res)
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

func nullableTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

var _ Repo = (*PGRepo)(nil)
