package llm

import (
	"context"
	"strings"
)

// Provider identifies an LLM vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultProvider is used when a user has not chosen one.
const DefaultProvider = ProviderOpenAI

// Providers lists the supported providers in fallback order.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic}

// ParseProvider normalizes a provider name. ok is false for unknown names.
func ParseProvider(raw string) (Provider, bool) {
	switch Provider(strings.ToLower(strings.TrimSpace(raw))) {
	case ProviderOpenAI:
		return ProviderOpenAI, true
	case ProviderAnthropic:
		return ProviderAnthropic, true
	default:
		return "", false
	}
}

// Other returns the provider used as fallback for p.
func (p Provider) Other() Provider {
	if p == ProviderAnthropic {
		return ProviderOpenAI
	}
	return ProviderAnthropic
}

func (p Provider) String() string { return string(p) }

// Client sends a single prompt to a provider and returns the raw text reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Usage is token accounting reported by a provider, when available.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
