package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-tailor/resume/model"
)

// Service contains business logic for profiles.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Snapshot loads the profile with its work experiences and educations in display order.
func (s *Service) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	if err := s.ready(); err != nil {
		return Snapshot{}, err
	}
	profile, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	work, err := s.Repo.ListWorkExperiences(ctx, profile.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list work experiences: %w", err)
	}
	educations, err := s.Repo.ListEducations(ctx, profile.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list educations: %w", err)
	}
	return Snapshot{Profile: profile, WorkExperiences: work, Educations: educations}, nil
}

// SaveProfile creates the profile on first save and updates it thereafter.
func (s *Service) SaveProfile(ctx context.Context, userID string, in ProfileInput) (Profile, error) {
	if err := s.ready(); err != nil {
		return Profile{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Profile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.Repo.UpsertProfile(ctx, Profile{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Location: strings.TrimSpace(in.Location),
	})
}

// AddWorkExperience attaches a work experience to the user's profile.
func (s *Service) AddWorkExperience(ctx context.Context, userID string, in WorkExperienceInput) (WorkExperience, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return WorkExperience{}, err
	}
	exp, err := in.toRecord(uuid.NewString(), profile.ID)
	if err != nil {
		return WorkExperience{}, err
	}
	if err := s.Repo.CreateWorkExperience(ctx, exp); err != nil {
		return WorkExperience{}, err
	}
	return exp, nil
}

// UpdateWorkExperience replaces a work experience owned by the user's profile.
func (s *Service) UpdateWorkExperience(ctx context.Context, userID, id string, in WorkExperienceInput) (WorkExperience, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return WorkExperience{}, err
	}
	exp, err := in.toRecord(id, profile.ID)
	if err != nil {
		return WorkExperience{}, err
	}
	if err := s.Repo.UpdateWorkExperience(ctx, exp); err != nil {
		return WorkExperience{}, err
	}
	return exp, nil
}

// DeleteWorkExperience removes a work experience owned by the user's profile.
func (s *Service) DeleteWorkExperience(ctx context.Context, userID, id string) error {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteWorkExperience(ctx, profile.ID, id)
}

// AddEducation attaches an education record to the user's profile.
func (s *Service) AddEducation(ctx context.Context, userID string, in EducationInput) (Education, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return Education{}, err
	}
	edu, err := in.toRecord(uuid.NewString(), profile.ID)
	if err != nil {
		return Education{}, err
	}
	if err := s.Repo.CreateEducation(ctx, edu); err != nil {
		return Education{}, err
	}
	return edu, nil
}

// UpdateEducation replaces an education record owned by the user's profile.
func (s *Service) UpdateEducation(ctx context.Context, userID, id string, in EducationInput) (Education, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return Education{}, err
	}
	edu, err := in.toRecord(id, profile.ID)
	if err != nil {
		return Education{}, err
	}
	if err := s.Repo.UpdateEducation(ctx, edu); err != nil {
		return Education{}, err
	}
	return edu, nil
}

// DeleteEducation removes an education record owned by the user's profile.
func (s *Service) DeleteEducation(ctx context.Context, userID, id string) error {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteEducation(ctx, profile.ID, id)
}

func (s *Service) profileFor(ctx context.Context, userID string) (Profile, error) {
	if err := s.ready(); err != nil {
		return Profile{}, err
	}
	return s.Repo.GetProfile(ctx, userID)
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("profiles service not configured")
	}
	return nil
}

func (in WorkExperienceInput) toRecord(id, profileID string) (WorkExperience, error) {
	company := strings.TrimSpace(in.Company)
	position := strings.TrimSpace(in.Position)
	if company == "" || position == "" {
		return WorkExperience{}, fmt.Errorf("%w: company and position are required", ErrInvalidInput)
	}
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return WorkExperience{}, err
	}
	if in.IsCurrent {
		end = nil
	}
	return WorkExperience{
		ID:        id,
		ProfileID: profileID,
		Company:   company,
		Position:  position,
		StartDate: start,
		EndDate:   end,
		IsCurrent: in.IsCurrent,
	}, nil
}

func (in EducationInput) toRecord(id, profileID string) (Education, error) {
	university := strings.TrimSpace(in.University)
	degree := strings.TrimSpace(in.Degree)
	if university == "" || degree == "" {
		return Education{}, fmt.Errorf("%w: university and degree are required", ErrInvalidInput)
	}
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return Education{}, err
	}
	return Education{
		ID:         id,
		ProfileID:  profileID,
		University: university,
		Degree:     degree,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

func parseRange(startRaw, endRaw string) (time.Time, *time.Time, error) {
	if strings.TrimSpace(startRaw) == "" {
		return time.Time{}, nil, fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	start, err := model.ParseDate(startRaw)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(endRaw) == "" {
		return start, nil, nil
	}
	end, err := model.ParseDate(endRaw)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}
	if end.Before(start) {
		return time.Time{}, nil, fmt.Errorf("%w: endDate must not precede startDate", ErrInvalidInput)
	}
	return start, &end, nil
}
