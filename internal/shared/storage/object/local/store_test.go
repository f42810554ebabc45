package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"resume-tailor/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	n, err := store.SaveWithKey(ctx, "exports/abc/r1.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.3 body")))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != 13 {
		t.Fatalf("expected 13 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "exports/abc/r1.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "%PDF-1.3 body" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, "exports/abc/r1.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, "exports/abc/r1.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "exports/abc/r1.pdf"); err != nil {
		t.Fatalf("deleting a missing object should succeed, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	if _, err := store.SaveWithKey(ctx, "../escape.pdf", "", bytes.NewReader(nil)); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := store.Open(ctx, "/etc/passwd"); err == nil {
		t.Fatalf("expected absolute path to be rejected")
	}
}

func TestHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := New(t.TempDir())
	if _, err := store.SaveWithKey(ctx, "a/b.pdf", "", bytes.NewReader(nil)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
