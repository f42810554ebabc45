package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-tailor/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Options{APIKey: "sk-ant-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestCompleteSendsHeadersAndMessagesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "sk-ant-test" {
			t.Errorf("unexpected x-api-key %q", got)
		}
		if got := r.Header.Get("Anthropic-Version"); got != APIVersion {
			t.Errorf("unexpected anthropic-version %q", got)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("bearer auth must not be sent")
		}
		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Model != DefaultModel || req.MaxTokens != MaxTokens || len(req.Messages) != 1 || req.Messages[0].Content != "tailor this" {
			t.Errorf("unexpected request %+v", req)
		}
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"{\"a\":"},{"type":"text","text":"1}"}],"usage":{"input_tokens":10,"output_tokens":2}}`)
	})

	got, err := client.Complete(context.Background(), "tailor this")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestCompleteMapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusUnauthorized, want: llm.ErrInvalidAPIKey},
		{status: http.StatusForbidden, want: llm.ErrInvalidAPIKey},
		{status: http.StatusTooManyRequests, want: llm.ErrQuotaExceeded},
		{status: http.StatusBadGateway, want: llm.ErrProviderFailed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"type":"error","error":{"type":"x","message":"denied"}}`)
			})
			_, err := client.Complete(context.Background(), "p")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCompleteNoTextIsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content":[]}`)
	})
	if _, err := client.Complete(context.Background(), "p"); !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCompleteUnreachableIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(Options{APIKey: "k", BaseURL: url})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Complete(context.Background(), "p"); !errors.Is(err, llm.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}
