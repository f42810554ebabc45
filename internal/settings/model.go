package settings

import (
	"time"

	"resume-tailor/internal/llm"
)

// Settings holds a user's provider keys and preference. An empty key means not configured.
type Settings struct {
	UserID            string
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	PreferredProvider llm.Provider
	UpdatedAt         time.Time
}

// Defaults is what a user without a settings row gets.
func Defaults(userID string) Settings {
	return Settings{UserID: userID, PreferredProvider: llm.DefaultProvider}
}

// KeyFor returns the stored key for provider.
func (s Settings) KeyFor(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return s.OpenAIAPIKey
	case llm.ProviderAnthropic:
		return s.AnthropicAPIKey
	default:
		return ""
	}
}

// Resolve picks the preferred provider when its key is set, otherwise the other provider when its key
// is set. ok is false when neither key is configured.
func Resolve(s Settings) (provider llm.Provider, apiKey string, ok bool) {
	preferred, valid := llm.ParseProvider(string(s.PreferredProvider))
	if !valid {
		preferred = llm.DefaultProvider
	}
	for _, candidate := range []llm.Provider{preferred, preferred.Other()} {
		if key := s.KeyFor(candidate); key != "" {
			return candidate, key, true
		}
	}
	return "", "", false
}
