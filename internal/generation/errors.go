package generation

import (
	"errors"
	"net/http"
)

// Generation failure taxonomy. Every error returned by Service.Generate matches exactly one of these.
var (
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrProfileNotFound         = errors.New("profile not found")
	ErrBadRequest              = errors.New("bad request")
	ErrMissingConfiguration    = errors.New("no provider api key configured")
	ErrInvalidAPIKey           = errors.New("provider rejected the api key")
	ErrQuotaExceeded           = errors.New("provider quota exceeded")
	ErrNetworkError            = errors.New("provider unreachable")
	ErrTimeout                 = errors.New("provider timed out")
	ErrInvalidProviderResponse = errors.New("provider returned an invalid response")
	ErrInternal                = errors.New("internal error")
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "authentication required"},
	{ErrProfileNotFound, http.StatusNotFound, "profile_not_found", "create your profile before generating a resume"},
	{ErrBadRequest, http.StatusBadRequest, "bad_request", "invalid request"},
	{ErrMissingConfiguration, http.StatusBadRequest, "missing_configuration", "add an OpenAI or Anthropic API key in settings"},
	{ErrInvalidAPIKey, http.StatusUnauthorized, "invalid_api_key", "the provider rejected your API key"},
	{ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded", "the provider quota or rate limit was exceeded"},
	{ErrNetworkError, http.StatusServiceUnavailable, "network_error", "the provider could not be reached"},
	{ErrTimeout, http.StatusGatewayTimeout, "timeout", "the provider did not respond in time"},
	{ErrInvalidProviderResponse, http.StatusBadGateway, "invalid_provider_response", "the provider returned a response that could not be parsed"},
}

// HTTPStatus maps an error from this package to its status, code and client message.
func HTTPStatus(err error) (status int, code, message string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, "internal_error", "resume generation failed"
}
