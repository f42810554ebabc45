package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"resume-tailor/internal/history"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/storage/object"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/shared/util"
	"resume-tailor/resume/model"
	"resume-tailor/resume/render"
)

const cachePrefix = "exports"

// ResumeSource loads stored resume records owned by a user.
type ResumeSource interface {
	GetResume(ctx context.Context, userID, resumeID string) (history.ResumeRecord, error)
}

// Document is a rendered export ready to send.
type Document struct {
	Data        []byte
	ContentType string
	FileName    string
	FromCache   bool
}

// Service renders resumes to documents. Cache is optional.
type Service struct {
	Resumes ResumeSource
	Cache   object.ObjectStore
}

// CacheKey is where a stored resume's rendered bytes live. Resume payloads never change, so the
// resume id and the renderer's layout version identify the document.
func CacheKey(userID, resumeID string, format render.Format) string {
	return util.ScopedKey(cachePrefix, userID, "v"+render.LayoutVersion, resumeID+"."+format.Extension())
}

// legacyCacheKey is the unversioned layout written before LayoutVersion existed. Purge still clears it.
func legacyCacheKey(userID, resumeID string, format render.Format) string {
	return util.ScopedKey(cachePrefix, userID, resumeID+"."+format.Extension())
}

// ExportStored renders a resume record, serving the cached copy when one exists.
func (s *Service) ExportStored(ctx context.Context, userID, resumeID string, format render.Format) (Document, error) {
	if s == nil || s.Resumes == nil {
		return Document{}, errors.New("exports service not configured")
	}
	format, ok := render.ParseFormat(string(format))
	if !ok {
		return Document{}, ErrUnsupportedFormat
	}
	record, err := s.Resumes.GetResume(ctx, userID, resumeID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("load resume: %w", err)
	}

	doc := Document{ContentType: format.ContentType(), FileName: render.FileName(record.Resume, format)}
	key := CacheKey(userID, record.ID, format)
	if data, ok := s.readCache(ctx, key); ok {
		metrics.IncExport(string(format), "cache")
		doc.Data = data
		doc.FromCache = true
		return doc, nil
	}

	data, err := renderTimed(format, record.Resume)
	if err != nil {
		return Document{}, err
	}
	metrics.IncExport(string(format), "render")
	s.writeCache(ctx, key, format, data)
	doc.Data = data
	return doc, nil
}

// ExportResume renders a posted resume without touching storage.
func (s *Service) ExportResume(ctx context.Context, resume model.GeneratedResume, format render.Format) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	format, ok := render.ParseFormat(string(format))
	if !ok {
		return Document{}, ErrUnsupportedFormat
	}
	if err := resume.Validate(); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	data, err := renderTimed(format, resume)
	if err != nil {
		return Document{}, err
	}
	metrics.IncExport(string(format), "posted")
	return Document{Data: data, ContentType: format.ContentType(), FileName: render.FileName(resume, format)}, nil
}

// Purge drops cached documents for deleted resumes. Failures are logged.
func (s *Service) Purge(ctx context.Context, userID string, resumeIDs []string) {
	if s == nil || s.Cache == nil {
		return
	}
	for _, id := range resumeIDs {
		for _, format := range []render.Format{render.FormatPDF, render.FormatDOCX} {
			for _, key := range []string{CacheKey(userID, id, format), legacyCacheKey(userID, id, format)} {
				if err := s.Cache.Delete(ctx, key); err != nil && !errors.Is(err, object.ErrNotFound) {
					telemetry.Warn("export.cache_purge_failed", map[string]any{"key": key, "error": err})
				}
			}
		}
	}
}

func (s *Service) readCache(ctx context.Context, key string) ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	rc, err := s.Cache.Open(ctx, key)
	if err != nil {
		if !errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("export.cache_read_failed", map[string]any{"key": key, "error": err})
		}
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil || len(data) == 0 {
		telemetry.Warn("export.cache_read_failed", map[string]any{"key": key, "error": err})
		return nil, false
	}
	return data, true
}

func (s *Service) writeCache(ctx context.Context, key string, format render.Format, data []byte) {
	if s.Cache == nil {
		return
	}
	if _, err := s.Cache.SaveWithKey(ctx, key, format.ContentType(), bytes.NewReader(data)); err != nil {
		telemetry.Warn("export.cache_write_failed", map[string]any{"key": key, "error": err})
	}
}

func renderTimed(format render.Format, resume model.GeneratedResume) ([]byte, error) {
	start := time.Now()
	data, err := render.Render(format, resume)
	metrics.ObserveExportDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		switch {
		case errors.Is(err, render.ErrMissingName):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, render.ErrUnsupportedFormat):
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
