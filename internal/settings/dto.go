package settings

// UpdateInput is the partial update accepted by PUT /settings.
type UpdateInput struct {
	PreferredProvider *string `json:"preferredProvider"`
	OpenAIAPIKey      *string `json:"openaiApiKey"`
	AnthropicAPIKey   *string `json:"anthropicApiKey"`
}

// KeyStatus describes a stored key without revealing it.
type KeyStatus struct {
	Configured bool   `json:"configured"`
	Masked     string `json:"masked,omitempty"`
}

// Response is the settings view returned to clients.
type Response struct {
	PreferredProvider string    `json:"preferredProvider"`
	OpenAI            KeyStatus `json:"openai"`
	Anthropic         KeyStatus `json:"anthropic"`
}

func toResponse(s Settings) Response {
	return Response{
		PreferredProvider: string(s.PreferredProvider),
		OpenAI:            keyStatus(s.OpenAIAPIKey),
		Anthropic:         keyStatus(s.AnthropicAPIKey),
	}
}

func keyStatus(key string) KeyStatus {
	return KeyStatus{Configured: key != "", Masked: MaskKey(key)}
}
