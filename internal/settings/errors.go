package settings

import "errors"

var (
	// ErrNotFound indicates the user has never saved settings.
	ErrNotFound = errors.New("settings not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfiguration indicates neither provider has an API key.
	ErrMissingConfiguration = errors.New("no provider api key configured")
)
