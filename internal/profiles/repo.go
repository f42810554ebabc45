package profiles

import "context"

// Repo defines persistence operations for profiles and their child records.
// List methods return records ordered by start_date DESC, id ASC.
type Repo interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpsertProfile(ctx context.Context, profile Profile) (Profile, error)

	ListWorkExperiences(ctx context.Context, profileID string) ([]WorkExperience, error)
	CreateWorkExperience(ctx context.Context, exp WorkExperience) error
	UpdateWorkExperience(ctx context.Context, exp WorkExperience) error
	DeleteWorkExperience(ctx context.Context, profileID, id string) error

	ListEducations(ctx context.Context, profileID string) ([]Education, error)
	CreateEducation(ctx context.Context, edu Education) error
	UpdateEducation(ctx context.Context, edu Education) error
	DeleteEducation(ctx context.Context, profileID, id string) error
}
