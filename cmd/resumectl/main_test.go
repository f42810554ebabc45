package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-tailor/internal/shared/auth"
)

const resumeJSON = `{
  "professionalTitle": "Backend Engineer",
  "professionalSummary": "Go services.",
  "personalInfo": {"name": "Jane Doe", "email": "jane@example.com"},
  "workExperiences": [{"company": "Acme", "position": "Engineer", "startDate": "2021-03-01", "isCurrent": true, "achievements": ["Shipped things"]}],
  "technicalSkills": ["Languages: Go"],
  "education": []
}`

const profileJSON = `{
  "profile": {"id": "p1", "name": "Jane Doe", "email": "jane@example.com", "location": "Austin, TX"},
  "workExperiences": [
    {"id": "w1", "company": "Acme", "position": "Staff Engineer", "startDate": "2021-03-01", "isCurrent": true},
    {"id": "w2", "company": "Globex", "position": "Engineer", "startDate": "2017-06-01", "endDate": "2021-02-01"}
  ],
  "educations": [{"id": "e1", "university": "State University", "degree": "BSc", "startDate": "2013-09-01", "endDate": "2017-05-01"}]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExportWritesDocument(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "resume.json", resumeJSON)

	out, err := execute(t, "export", input, "--format", "docx")
	if err != nil {
		t.Fatalf("export: %v (%s)", err, out)
	}
	want := filepath.Join(dir, "jane_doe_resume.docx")
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected output path %s, got %q", want, out)
	}
	data, err := os.ReadFile(want)
	if err != nil || len(data) == 0 {
		t.Fatalf("expected document on disk: %v", err)
	}

	pdfPath := filepath.Join(dir, "nested", "cv.pdf")
	if _, err := execute(t, "export", input, "-o", pdfPath); err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	data, err = os.ReadFile(pdfPath)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected pdf on disk: %v", err)
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "resume.json", `{"personalInfo":{"name":""}}`)
	if _, err := execute(t, "export", input); err == nil {
		t.Fatalf("expected error for missing name")
	}
	good := writeFile(t, dir, "good.json", resumeJSON)
	if _, err := execute(t, "export", good, "--format", "odt"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestPromptIncludesProfileAndJobDescription(t *testing.T) {
	dir := t.TempDir()
	profile := writeFile(t, dir, "profile.json", profileJSON)
	jd := writeFile(t, dir, "jd.txt", "We need a platform engineer fluent in Go and Postgres.")

	out, err := execute(t, "prompt", profile, jd, "--achievements", "5")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	for _, want := range []string{"platform engineer fluent in Go", "Jane Doe", "Staff Engineer at Acme", "Engineer at Globex", "State University", "5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q:\n%s", want, out)
		}
	}
}

func TestTokenVerifies(t *testing.T) {
	signed, err := runToken("user-7", &tokenOptions{email: "ops@example.com", admin: true, ttl: time.Hour}, time.Now().UTC())
	if err != nil {
		t.Fatalf("runToken: %v", err)
	}
	claims, err := auth.VerifyJWT(signed)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "user-7" || claims.Role != auth.RoleAdmin || claims.Email != "ops@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := runToken("user-7", &tokenOptions{}, time.Now()); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
