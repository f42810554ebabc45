package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/registry"
	"resume-tailor/internal/profiles"
	"resume-tailor/internal/settings"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/resume/model"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 60 * time.Second

// ProfileSource loads the ordered profile snapshot for a user.
type ProfileSource interface {
	Snapshot(ctx context.Context, userID string) (profiles.Snapshot, error)
}

// ProviderResolver picks the provider and key to use for a user.
type ProviderResolver interface {
	ResolveForUser(ctx context.Context, userID string) (llm.Provider, string, error)
}

// Service runs the resume generation function.
type Service struct {
	Profiles     ProfileSource
	Settings     ProviderResolver
	Clients      registry.Factory
	Timeout      time.Duration
	Achievements int
}

// Result is a generated resume with the provider that wrote it.
type Result struct {
	Resume       model.GeneratedResume
	Provider     llm.Provider
	CostEstimate float64
}

// Generate tailors the user's stored profile to jobDescription through one provider call.
func (s *Service) Generate(ctx context.Context, userID, jobDescription string) (Result, error) {
	if userID == "" {
		return Result{}, ErrUnauthenticated
	}
	if strings.TrimSpace(jobDescription) == "" {
		return Result{}, fmt.Errorf("%w: jobDescription is required", ErrBadRequest)
	}
	if s.Profiles == nil || s.Settings == nil || s.Clients == nil {
		return Result{}, fmt.Errorf("%w: generation service not configured", ErrInternal)
	}

	snap, err := s.Profiles.Snapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return Result{}, ErrProfileNotFound
		}
		return Result{}, fmt.Errorf("%w: load profile: %v", ErrInternal, err)
	}

	provider, apiKey, err := s.Settings.ResolveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, settings.ErrMissingConfiguration) {
			return Result{}, ErrMissingConfiguration
		}
		return Result{}, fmt.Errorf("%w: load settings: %v", ErrInternal, err)
	}

	prompt, err := BuildPrompt(snap, jobDescription, s.achievements())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	client, err := s.Clients.New(provider, apiKey)
	if err != nil {
		return Result{}, fmt.Errorf("%w: build %s client: %v", ErrInternal, provider, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	start := time.Now()
	raw, err := client.Complete(callCtx, prompt)
	elapsed := time.Since(start)
	metrics.ObserveGenerationDurationMs(float64(elapsed.Milliseconds()))
	if err != nil {
		mapped := mapProviderError(err)
		metrics.IncGeneration(string(provider), outcomeFor(mapped))
		telemetry.Warn("generation.provider_failed", map[string]any{
			"user_id":     userID,
			"provider":    string(provider),
			"duration_ms": elapsed.Milliseconds(),
			"error":       err,
		})
		return Result{}, mapped
	}

	parsed, err := Parse(raw)
	if err != nil {
		metrics.IncGeneration(string(provider), "invalid_response")
		telemetry.Warn("generation.parse_failed", map[string]any{
			"user_id":   userID,
			"provider":  string(provider),
			"error":     err,
			"raw_bytes": len(raw),
		})
		return Result{}, err
	}

	resume := Merge(snap, parsed).Normalize()
	cost := EstimateCost(len(prompt), len(snap.WorkExperiences), len(snap.Educations), provider)
	metrics.IncGeneration(string(provider), "success")
	telemetry.Info("generation.complete", map[string]any{
		"user_id":          userID,
		"provider":         string(provider),
		"duration_ms":      elapsed.Milliseconds(),
		"work_experiences": len(resume.WorkExperiences),
		"cost_estimate":    cost,
	})
	return Result{Resume: resume, Provider: provider, CostEstimate: cost}, nil
}

// mapProviderError translates the llm taxonomy into generation errors. The original cause stays attached.
func mapProviderError(err error) error {
	var target error
	switch {
	case errors.Is(err, llm.ErrInvalidAPIKey):
		target = ErrInvalidAPIKey
	case errors.Is(err, llm.ErrQuotaExceeded):
		target = ErrQuotaExceeded
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		target = ErrTimeout
	case errors.Is(err, llm.ErrNetwork):
		target = ErrNetworkError
	case errors.Is(err, llm.ErrEmptyResponse):
		target = ErrInvalidProviderResponse
	default:
		target = ErrInternal
	}
	return fmt.Errorf("%w: %v", target, err)
}

func outcomeFor(err error) string {
	_, code, _ := HTTPStatus(err)
	return code
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Service) achievements() int {
	switch {
	case s.Achievements <= 0:
		return DefaultAchievements
	case s.Achievements < MinAchievements:
		return MinAchievements
	default:
		return s.Achievements
	}
}
