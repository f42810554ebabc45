package history

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo stores history in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
	resumes map[string]ResumeRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		entries: make(map[string]Entry),
		resumes: make(map[string]ResumeRecord),
	}
}

func (r *MemoryRepo) CreateEntry(ctx context.Context, entry Entry, first ResumeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	r.resumes[first.ID] = first
	return nil
}

func (r *MemoryRepo) ListEntries(ctx context.Context, userID string, filter ListFilter) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter = filter.Normalize()
	company := strings.ToLower(filter.Company)
	role := strings.ToLower(filter.Role)

	r.mu.RLock()
	counts := make(map[string]int)
	for _, rec := range r.resumes {
		counts[rec.JobHistoryID]++
	}
	matched := make([]Entry, 0)
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		if company != "" && !strings.Contains(strings.ToLower(entry.CompanyName), company) {
			continue
		}
		if role != "" && !strings.Contains(strings.ToLower(entry.Role), role) {
			continue
		}
		entry.ResumeCount = counts[entry.ID]
		matched = append(matched, entry)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if filter.Offset >= len(matched) {
		return []Entry{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}

func (r *MemoryRepo) GetEntry(ctx context.Context, userID, entryID string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[entryID]
	if !ok || entry.UserID != userID {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (r *MemoryRepo) UpdateNote(ctx context.Context, userID, entryID string, note *string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok || entry.UserID != userID {
		return Entry{}, ErrNotFound
	}
	entry.Note = note
	r.entries[entryID] = entry
	return entry, nil
}

// DeleteEntry removes resume records explicitly, mirroring ON DELETE CASCADE.
func (r *MemoryRepo) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok || entry.UserID != userID {
		return ErrNotFound
	}
	delete(r.entries, entryID)
	for id, rec := range r.resumes {
		if rec.JobHistoryID == entryID {
			delete(r.resumes, id)
		}
	}
	return nil
}

func (r *MemoryRepo) CreateResume(ctx context.Context, record ResumeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[record.JobHistoryID]
	if !ok || entry.UserID != record.UserID {
		return ErrNotFound
	}
	r.resumes[record.ID] = record
	return nil
}

func (r *MemoryRepo) ListResumes(ctx context.Context, userID, entryID string) ([]ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]ResumeRecord, 0)
	for _, rec := range r.resumes {
		if rec.JobHistoryID == entryID && rec.UserID == userID {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) GetResume(ctx context.Context, userID, resumeID string) (ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return ResumeRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.resumes[resumeID]
	if !ok || rec.UserID != userID {
		return ResumeRecord{}, ErrNotFound
	}
	return rec, nil
}

var _ Repo = (*MemoryRepo)(nil)
