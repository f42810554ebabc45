package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-tailor/resume/model"
)

// Format identifies an export format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Section headings, in layout order.
const (
	SectionSummary    = "Professional Summary"
	SectionExperience = "Professional Experience"
	SectionSkills     = "Technical Skills"
	SectionEducation  = "Education"
)

// LayoutVersion changes whenever the bytes rendered for the same resume change.
// Caches of rendered documents key on it.
const LayoutVersion = "2"

var (
	// ErrUnsupportedFormat is returned for anything other than pdf or docx.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrMissingName is returned when the resume has no name to head the document.
	ErrMissingName = errors.New("personal info name is required")
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(raw string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatPDF:
		return FormatPDF, true
	case FormatDOCX:
		return FormatDOCX, true
	default:
		return "", false
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatDOCX {
		return mimeDOCX
	}
	return mimePDF
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Render dispatches to the exporter for format.
func Render(format Format, resume model.GeneratedResume) ([]byte, error) {
	switch format {
	case FormatPDF:
		return RenderPDF(resume)
	case FormatDOCX:
		return RenderDOCX(resume)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FileName builds the download name for a rendered resume, e.g. "jane_doe_resume.pdf".
func FileName(resume model.GeneratedResume, format Format) string {
	name := strings.ToLower(strings.TrimSpace(resume.PersonalInfo.Name))
	var b strings.Builder
	lastUnderscore := false
	for _, ch := range name {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'):
			b.WriteRune(ch)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	base := strings.TrimSuffix(b.String(), "_")
	if base == "" {
		base = "generated"
	}
	return base + "_resume." + format.Extension()
}

// DateRange renders "Jan 2021 - Present" style ranges.
func DateRange(start, end string, current bool) string {
	from := formatMonth(start)
	to := formatMonth(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}

func formatMonth(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := model.ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2006")
}

func contactLine(info model.PersonalInfo) string {
	return strings.Join(nonBlank([]string{info.Email, info.Phone, info.Location}), " | ")
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func requireName(resume model.GeneratedResume) error {
	if strings.TrimSpace(resume.PersonalInfo.Name) == "" {
		return ErrMissingName
	}
	return nil
}

// renderedAt is swapped in tests to keep document metadata stable.
var renderedAt = time.Now
