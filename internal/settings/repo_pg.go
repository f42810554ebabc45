package settings

import (
	"context"
	"database/sql"
	"errors"

	"resume-tailor/internal/llm"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Settings, error) {
	const query = `
SELECT user_id, openai_api_key, anthropic_api_key, preferred_provider, updated_at
FROM user_settings
WHERE user_id = $1`
	var (
		s          Settings
		openaiKey  sql.NullString
		anthKey    sql.NullString
		preference string
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &openaiKey, &anthKey, &preference, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{}, ErrNotFound
		}
		return Settings{}, err
	}
	s.OpenAIAPIKey = openaiKey.String
	s.AnthropicAPIKey = anthKey.String
	s.PreferredProvider = llm.Provider(preference)
	return s, nil
}

// Upsert writes the full row. Empty keys are stored as NULL.
func (r *PGRepo) Upsert(ctx context.Context, s Settings) (Settings, error) {
	const query = `
INSERT INTO user_settings (user_id, openai_api_key, anthropic_api_key, preferred_provider, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE SET
  openai_api_key = EXCLUDED.openai_api_key,
  anthropic_api_key = EXCLUDED.anthropic_api_key,
  preferred_provider = EXCLUDED.preferred_provider,
  updated_at = now()
RETURNING updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		s.UserID,
		nullableString(s.OpenAIAPIKey),
		nullableString(s.AnthropicAPIKey),
		string(s.PreferredProvider),
	).Scan(&s.UpdatedAt)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

var _ Repo = (*PGRepo)(nil)
