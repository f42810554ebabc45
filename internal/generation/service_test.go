package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/registry"
	"resume-tailor/internal/profiles"
	"resume-tailor/internal/settings"
)

type fakeProfiles struct {
	snap profiles.Snapshot
	err  error
}

func (f fakeProfiles) Snapshot(context.Context, string) (profiles.Snapshot, error) {
	return f.snap, f.err
}

type fakeClient struct {
	reply  string
	err    error
	prompt string
	calls  int
	block  bool
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", &llm.TransportError{Provider: llm.ProviderOpenAI, Err: ctx.Err()}
	}
	return f.reply, f.err
}

// newSettings stores keys in a memory settings service.
func newSettings(t *testing.T, preferred, openaiKey, anthropicKey string) *settings.Service {
	t.Helper()
	svc := settings.NewService(settings.NewMemoryRepo())
	if _, err := svc.Update(context.Background(), "user-1", settings.UpdateInput{
		PreferredProvider: &preferred,
		OpenAIAPIKey:      &openaiKey,
		AnthropicAPIKey:   &anthropicKey,
	}); err != nil {
		t.Fatalf("settings update: %v", err)
	}
	return svc
}

func newService(t *testing.T, client *fakeClient, resolver ProviderResolver) (*Service, *[]llm.Provider) {
	t.Helper()
	var used []llm.Provider
	return &Service{
		Profiles: fakeProfiles{snap: sampleSnapshot()},
		Settings: resolver,
		Clients: registry.FactoryFunc(func(p llm.Provider, key string) (llm.Client, error) {
			used = append(used, p)
			return client, nil
		}),
	}, &used
}

func TestGenerateMergesProviderReply(t *testing.T) {
	client := &fakeClient{reply: "```json\n" + `{"professionalTitle":"Staff Engineer","professionalSummary":"s","workExperiences":[{"company":"x","achievements":["a1","a2"]},{"company":"y","achievements":["b1"]},{"company":"z","achievements":["c1"]}],"technicalSkills":["Languages: Go"]}` + "\n```"}
	svc, used := newService(t, client, newSettings(t, "openai", "sk-openai-1", ""))

	result, err := svc.Generate(context.Background(), "user-1", "Go engineer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Provider != llm.ProviderOpenAI || len(*used) != 1 {
		t.Fatalf("unexpected provider %q (%v)", result.Provider, *used)
	}
	if len(result.Resume.WorkExperiences) != 2 || result.Resume.WorkExperiences[0].Company != "Acme" || result.Resume.WorkExperiences[1].Achievements[0] != "b1" {
		t.Fatalf("unexpected merge %+v", result.Resume.WorkExperiences)
	}
	want := EstimateCost(len(client.prompt), 2, 1, llm.ProviderOpenAI)
	if result.CostEstimate != want {
		t.Fatalf("cost %v, want %v", result.CostEstimate, want)
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newService(t, client, newSettings(t, "openai", "sk-1", ""))

	if _, err := svc.Generate(context.Background(), "", "jd"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), "user-1", " \n\t "); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}

	svc.Profiles = fakeProfiles{err: profiles.ErrProfileNotFound}
	if _, err := svc.Generate(context.Background(), "user-1", "jd"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", client.calls)
	}
}

func TestGenerateMissingConfigurationMakesNoCall(t *testing.T) {
	client := &fakeClient{}
	svc, used := newService(t, client, newSettings(t, "anthropic", "", ""))

	if _, err := svc.Generate(context.Background(), "user-1", "jd"); !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("expected ErrMissingConfiguration, got %v", err)
	}
	if client.calls != 0 || len(*used) != 0 {
		t.Fatalf("expected no client construction or call, got %d calls %v", client.calls, *used)
	}
}

func TestGenerateMapsProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unauthorized", err: &llm.StatusError{Provider: llm.ProviderOpenAI, StatusCode: 401}, want: ErrInvalidAPIKey},
		{name: "quota", err: &llm.StatusError{Provider: llm.ProviderOpenAI, StatusCode: 429}, want: ErrQuotaExceeded},
		{name: "network", err: &llm.TransportError{Provider: llm.ProviderOpenAI, Err: errors.New("connection refused")}, want: ErrNetworkError},
		{name: "timeout", err: &llm.TransportError{Provider: llm.ProviderOpenAI, Err: context.DeadlineExceeded}, want: ErrTimeout},
		{name: "server error", err: &llm.StatusError{Provider: llm.ProviderOpenAI, StatusCode: 500}, want: ErrInternal},
		{name: "empty", err: fmt.Errorf("wrapped: %w", llm.ErrEmptyResponse), want: ErrInvalidProviderResponse},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, &fakeClient{err: tt.err}, newSettings(t, "openai", "sk-1", ""))
			if _, err := svc.Generate(context.Background(), "user-1", "jd"); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGenerateInvalidReply(t *testing.T) {
	svc, _ := newService(t, &fakeClient{reply: "Sorry, I can't do that."}, newSettings(t, "openai", "sk-1", ""))
	if _, err := svc.Generate(context.Background(), "user-1", "jd"); !errors.Is(err, ErrInvalidProviderResponse) {
		t.Fatalf("expected ErrInvalidProviderResponse, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	svc, _ := newService(t, &fakeClient{block: true}, newSettings(t, "openai", "sk-1", ""))
	svc.Timeout = 20 * time.Millisecond
	if _, err := svc.Generate(context.Background(), "user-1", "jd"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

// TestGenerateFallsBackToConfiguredProvider drives the real provider clients against fake servers.
func TestGenerateFallsBackToConfiguredProvider(t *testing.T) {
	var openaiCalls, anthropicCalls int32
	openaiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&openaiCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer openaiServer.Close()
	anthropicServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&anthropicCalls, 1)
		if r.Header.Get("X-Api-Key") != "sk-ant-x" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"{\"professionalTitle\":\"T\",\"professionalSummary\":\"S\",\"workExperiences\":[{\"company\":\"Acme\",\"achievements\":[\"x\"]}],\"technicalSkills\":[]}"}]}`)
	}))
	defer anthropicServer.Close()

	svc := &Service{
		Profiles: fakeProfiles{snap: sampleSnapshot()},
		Settings: newSettings(t, "openai", "", "sk-ant-x"),
		Clients: &registry.Registry{
			OpenAIBaseURL:    openaiServer.URL,
			AnthropicBaseURL: anthropicServer.URL,
			Timeout:          5 * time.Second,
		},
	}
	result, err := svc.Generate(context.Background(), "user-1", "jd")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Provider != llm.ProviderAnthropic {
		t.Fatalf("expected anthropic, got %q", result.Provider)
	}
	if atomic.LoadInt32(&openaiCalls) != 0 || atomic.LoadInt32(&anthropicCalls) != 1 {
		t.Fatalf("unexpected calls openai=%d anthropic=%d", openaiCalls, anthropicCalls)
	}
	if got := result.Resume.WorkExperiences[0].Achievements; len(got) != 1 || !strings.EqualFold(got[0], "x") {
		t.Fatalf("unexpected achievements %v", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{ErrProfileNotFound, http.StatusNotFound, "profile_not_found"},
		{fmt.Errorf("%w: x", ErrBadRequest), http.StatusBadRequest, "bad_request"},
		{ErrMissingConfiguration, http.StatusBadRequest, "missing_configuration"},
		{ErrInvalidAPIKey, http.StatusUnauthorized, "invalid_api_key"},
		{ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded"},
		{ErrNetworkError, http.StatusServiceUnavailable, "network_error"},
		{ErrTimeout, http.StatusGatewayTimeout, "timeout"},
		{ErrInvalidProviderResponse, http.StatusBadGateway, "invalid_provider_response"},
		{ErrInternal, http.StatusInternalServerError, "internal_error"},
		{errors.New("other"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		status, code, _ := HTTPStatus(tt.err)
		if status != tt.status || code != tt.code {
			t.Fatalf("HTTPStatus(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}
