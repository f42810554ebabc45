package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-tailor/internal/llm"
)

// Service contains business logic for user settings.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Get returns the user's settings, or the defaults when none were saved.
func (s *Service) Get(ctx context.Context, userID string) (Settings, error) {
	if s == nil || s.Repo == nil {
		return Settings{}, errors.New("settings repo not configured")
	}
	stored, err := s.Repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Defaults(userID), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if _, ok := llm.ParseProvider(string(stored.PreferredProvider)); !ok {
		stored.PreferredProvider = llm.DefaultProvider
	}
	return stored, nil
}

// Update applies a partial update. Nil fields are left alone; an empty key clears it.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (Settings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Settings{}, err
	}
	if in.PreferredProvider != nil {
		provider, ok := llm.ParseProvider(*in.PreferredProvider)
		if !ok {
			return Settings{}, fmt.Errorf("%w: preferredProvider must be one of openai, anthropic", ErrInvalidInput)
		}
		current.PreferredProvider = provider
	}
	if in.OpenAIAPIKey != nil {
		current.OpenAIAPIKey = strings.TrimSpace(*in.OpenAIAPIKey)
	}
	if in.AnthropicAPIKey != nil {
		current.AnthropicAPIKey = strings.TrimSpace(*in.AnthropicAPIKey)
	}
	current.UserID = userID
	return s.Repo.Upsert(ctx, current)
}

// ResolveForUser loads settings and applies Resolve. Returns ErrMissingConfiguration when no key is set.
func (s *Service) ResolveForUser(ctx context.Context, userID string) (llm.Provider, string, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return "", "", err
	}
	provider, key, ok := Resolve(current)
	if !ok {
		return "", "", ErrMissingConfiguration
	}
	return provider, key, nil
}

// MaskKey keeps a recognisable prefix and the last four characters.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	const tail = 4
	if len(key) <= tail+3 {
		return strings.Repeat("*", len(key))
	}
	prefix := ""
	if i := strings.Index(key, "-"); i > 0 && i <= 6 {
		prefix = key[:i+1]
	}
	return prefix + "..." + key[len(key)-tail:]
}
