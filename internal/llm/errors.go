package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Provider failure taxonomy. Clients return errors that match one of these via errors.Is.
var (
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrQuotaExceeded  = errors.New("quota exceeded")
	ErrTimeout        = errors.New("provider timeout")
	ErrNetwork        = errors.New("provider unreachable")
	ErrEmptyResponse  = errors.New("provider returned no content")
	ErrProviderFailed = errors.New("provider request failed")
)

// StatusError is a non-2xx reply from a provider.
type StatusError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if len(msg) > 300 {
		msg = msg[:300] + "..."
	}
	return fmt.Sprintf("%s http status %d: %s", e.Provider, e.StatusCode, msg)
}

// Unwrap maps the status code onto the failure taxonomy.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidAPIKey
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return ErrQuotaExceeded
	default:
		return ErrProviderFailed
	}
}

// TransportError is a failure to get any HTTP reply from a provider.
type TransportError struct {
	Provider Provider
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Provider, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{e.kind(), e.Err}
}

func (e *TransportError) kind() error {
	if IsTimeout(e.Err) {
		return ErrTimeout
	}
	return ErrNetwork
}

// IsTimeout reports whether err is a deadline or client timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}
