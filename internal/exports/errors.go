package exports

import "errors"

var (
	// ErrNotFound indicates the resume does not exist or belongs to another user.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput indicates a resume that cannot be rendered.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a format other than pdf or docx.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
