package profiles

import "errors"

var (
	// ErrProfileNotFound indicates the user has not saved a profile yet.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNotFound indicates a work experience or education record was not found for the profile.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
