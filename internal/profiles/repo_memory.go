package profiles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores profiles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu         sync.RWMutex
	byUser     map[string]Profile
	work       map[string]WorkExperience
	educations map[string]Education
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser:     make(map[string]Profile),
		work:       make(map[string]WorkExperience),
		educations: make(map[string]Education),
	}
}

func (r *MemoryRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.byUser[userID]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

// UpsertProfile keeps the existing id and created_at when the user already has a profile.
func (r *MemoryRepo) UpsertProfile(ctx context.Context, profile Profile) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.byUser[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.byUser[profile.UserID] = profile
	return profile, nil
}

func (r *MemoryRepo) ListWorkExperiences(ctx context.Context, profileID string) ([]WorkExperience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]WorkExperience, 0)
	for _, exp := range r.work {
		if exp.ProfileID == profileID {
			out = append(out, exp)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return ordered(out[i].StartDate, out[i].ID, out[j].StartDate, out[j].ID)
	})
	return out, nil
}

func (r *MemoryRepo) CreateWorkExperience(ctx context.Context, exp WorkExperience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now().UTC()
	}
	r.work[exp.ID] = exp
	return nil
}

func (r *MemoryRepo) UpdateWorkExperience(ctx context.Context, exp WorkExperience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.work[exp.ID]
	if !ok || existing.ProfileID != exp.ProfileID {
		return ErrNotFound
	}
	exp.CreatedAt = existing.CreatedAt
	r.work[exp.ID] = exp
	return nil
}

func (r *MemoryRepo) DeleteWorkExperience(ctx context.Context, profileID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.work[id]
	if !ok || existing.ProfileID != profileID {
		return ErrNotFound
	}
	delete(r.work, id)
	return nil
}

func (r *MemoryRepo) ListEducations(ctx context.Context, profileID string) ([]Education, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Education, 0)
	for _, edu := range r.educations {
		if edu.ProfileID == profileID {
			out = append(out, edu)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return ordered(out[i].StartDate, out[i].ID, out[j].StartDate, out[j].ID)
	})
	return out, nil
}

func (r *MemoryRepo) CreateEducation(ctx context.Context, edu Education) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if edu.CreatedAt.IsZero() {
		edu.CreatedAt = time.Now().UTC()
	}
	r.educations[edu.ID] = edu
	return nil
}

func (r *MemoryRepo) UpdateEducation(ctx context.Context, edu Education) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.educations[edu.ID]
	if !ok || existing.ProfileID != edu.ProfileID {
		return ErrNotFound
	}
	edu.CreatedAt = existing.CreatedAt
	r.educations[edu.ID] = edu
	return nil
}

func (r *MemoryRepo) DeleteEducation(ctx context.Context, profileID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.educations[id]
	if !ok || existing.ProfileID != profileID {
		return ErrNotFound
	}
	delete(r.educations, id)
	return nil
}

// ordered matches ORDER BY start_date DESC, id ASC.
func ordered(startA time.Time, idA string, startB time.Time, idB string) bool {
	if !startA.Equal(startB) {
		return startA.After(startB)
	}
	return idA < idB
}

var _ Repo = (*MemoryRepo)(nil)
