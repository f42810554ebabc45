package registry

import (
	"fmt"
	"time"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/anthropic"
	"resume-tailor/internal/llm/openai"
	"resume-tailor/internal/shared/config"
)

// Factory builds a provider client for a user-supplied API key.
type Factory interface {
	New(provider llm.Provider, apiKey string) (llm.Client, error)
}

// Registry builds clients from the service configuration.
type Registry struct {
	OpenAIModel      string
	OpenAIBaseURL    string
	AnthropicModel   string
	AnthropicBaseURL string
	Timeout          time.Duration
}

// FromConfig copies provider settings out of cfg.
func FromConfig(cfg config.Config) *Registry {
	return &Registry{
		OpenAIModel:      cfg.OpenAIModel,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		AnthropicModel:   cfg.AnthropicModel,
		AnthropicBaseURL: cfg.AnthropicBaseURL,
		Timeout:          cfg.LLMHTTPTimeout,
	}
}

// New returns a client for provider authenticated with apiKey.
func (r *Registry) New(provider llm.Provider, apiKey string) (llm.Client, error) {
	switch provider {
	case llm.ProviderOpenAI:
		return openai.NewClient(openai.Options{
			APIKey:  apiKey,
			Model:   r.OpenAIModel,
			BaseURL: r.OpenAIBaseURL,
			Timeout: r.Timeout,
		})
	case llm.ProviderAnthropic:
		return anthropic.NewClient(anthropic.Options{
			APIKey:  apiKey,
			Model:   r.AnthropicModel,
			BaseURL: r.AnthropicBaseURL,
			Timeout: r.Timeout,
		})
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(provider llm.Provider, apiKey string) (llm.Client, error)

func (f FactoryFunc) New(provider llm.Provider, apiKey string) (llm.Client, error) {
	return f(provider, apiKey)
}

var _ Factory = (*Registry)(nil)
