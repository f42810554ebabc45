package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/history"
	"resume-tailor/resume/model"
)

const okReply = `{"professionalTitle":"Staff Engineer","professionalSummary":"s","workExperiences":[{"company":"Acme","achievements":["a1"]},{"company":"Globex","achievements":["b1"]}],"technicalSkills":["Languages: Go"]}`

// failingRepo fails every write; reads are never reached in these tests.
type failingRepo struct {
	history.Repo
}

func (failingRepo) CreateEntry(context.Context, history.Entry, history.ResumeRecord) error {
	return errors.New("database unavailable")
}

func newTestRouter(t *testing.T, client *fakeClient, hist HistoryRecorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newService(t, client, newSettings(t, "openai", "sk-openai-1", ""))
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	NewHandler(svc, hist).RegisterRoutes(api)
	return router
}

func postJSON(router http.Handler, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestGenerateEndpointSavesHistory(t *testing.T) {
	hist := history.NewService(history.NewMemoryRepo())
	router := newTestRouter(t, &fakeClient{reply: okReply}, hist)

	resp := postJSON(router, "/api/v1/generate", GenerateRequest{JobDescription: "Go engineer", CompanyName: "Initech", Role: "SRE", Save: true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get(headerProvider) != "openai" || resp.Header().Get(headerCostEstimate) == "" {
		t.Fatalf("missing result headers: %v", resp.Header())
	}
	historyID := resp.Header().Get(headerHistoryID)
	if historyID == "" || resp.Header().Get(headerResumeID) == "" {
		t.Fatalf("expected persistence headers, got %v", resp.Header())
	}
	var resume model.GeneratedResume
	if err := json.Unmarshal(resp.Body.Bytes(), &resume); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resume.PersonalInfo.Name != "Jane Doe" || len(resume.WorkExperiences) != 2 {
		t.Fatalf("unexpected resume %+v", resume)
	}

	entry, resumes, err := hist.Get(context.Background(), "user-1", historyID)
	if err != nil || entry.CompanyName != "Initech" || len(resumes) != 1 {
		t.Fatalf("history not stored: %+v %d %v", entry, len(resumes), err)
	}

	resp = postJSON(router, "/api/v1/history/"+historyID+"/regenerate", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on regenerate, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, resumes, _ = hist.Get(context.Background(), "user-1", historyID); len(resumes) != 2 {
		t.Fatalf("expected regenerate to append a resume, got %d", len(resumes))
	}
}

func TestGenerateEndpointSaveFailureStillSucceeds(t *testing.T) {
	router := newTestRouter(t, &fakeClient{reply: okReply}, history.NewService(failingRepo{}))

	resp := postJSON(router, "/api/v1/generate", GenerateRequest{JobDescription: "Go engineer", Save: true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 despite save failure, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get(headerHistoryID) != "" {
		t.Fatalf("history header must be absent when save fails")
	}
	var resume model.GeneratedResume
	if err := json.Unmarshal(resp.Body.Bytes(), &resume); err != nil || resume.ProfessionalTitle != "Staff Engineer" {
		t.Fatalf("expected resume body, got %s", resp.Body.String())
	}
}

func TestGenerateEndpointErrors(t *testing.T) {
	router := newTestRouter(t, &fakeClient{reply: "no json here"}, nil)

	resp := postJSON(router, "/api/v1/generate", GenerateRequest{JobDescription: "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = postJSON(router, "/api/v1/generate", GenerateRequest{JobDescription: "Go engineer"})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["code"] != "invalid_provider_response" || body["error"] == "" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestGenerateEndpointMultipartFile(t *testing.T) {
	client := &fakeClient{reply: okReply}
	router := newTestRouter(t, client, nil)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("companyName", "Initech")
	part, err := form.CreateFormFile("jobDescriptionFile", "jd.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write([]byte("Senior Go engineer for distributed payments"))
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(client.prompt, "Senior Go engineer for distributed payments") {
		t.Fatalf("uploaded job description not used in prompt")
	}
}

func TestRegenerateUnknownEntry(t *testing.T) {
	router := newTestRouter(t, &fakeClient{reply: okReply}, history.NewService(history.NewMemoryRepo()))
	resp := postJSON(router, "/api/v1/history/2f1f5d8e-4f7a-4c1e-9a57-2d1f0c9b7e11/regenerate", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
