package settings

import "context"

// Repo persists per-user settings.
type Repo interface {
	Get(ctx context.Context, userID string) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
