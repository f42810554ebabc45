package profiles

import "time"

// Profile is the personal information block. One per user.
type Profile struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkExperience is a stored employment record. EndDate is nil for current roles.
type WorkExperience struct {
	ID        string
	ProfileID string
	Company   string
	Position  string
	StartDate time.Time
	EndDate   *time.Time
	IsCurrent bool
	CreatedAt time.Time
}

// Education is a stored education record.
type Education struct {
	ID         string
	ProfileID  string
	University string
	Degree     string
	StartDate  time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
}

// Snapshot is a profile with its child records in display order (start date descending, then id).
type Snapshot struct {
	Profile         Profile
	WorkExperiences []WorkExperience
	Educations      []Education
}
