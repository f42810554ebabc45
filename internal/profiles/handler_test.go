package profiles

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(userID string) (*gin.Engine, *Service) {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo())
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(api)
	return router, svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestProfileEndpoints(t *testing.T) {
	router, _ := newTestRouter("user-1")

	resp := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before save, got %d", resp.Code)
	}
	var errBody map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &errBody)
	if errBody["code"] != "profile_not_found" {
		t.Fatalf("expected profile_not_found, got %v", errBody["code"])
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/profile/educations", EducationInput{University: "U", Degree: "D", StartDate: "2010-01-01"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for child without profile, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPut, "/api/v1/profile", ProfileInput{Name: "Jane Doe", Email: "jane@example.com"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on save, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/profile/work-experiences", WorkExperienceInput{
		Company: "Acme", Position: "Staff", StartDate: "2021-03", IsCurrent: true,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created WorkExperienceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.StartDate != "2021-03-01" || created.EndDate != "" {
		t.Fatalf("unexpected dates %+v", created)
	}
	if got := resp.Header().Get("Location"); got != "/api/v1/profile/work-experiences/"+created.ID {
		t.Fatalf("unexpected Location %q", got)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/profile/work-experiences", WorkExperienceInput{
		Company: "Acme", Position: "Staff", StartDate: "2021-03-01", EndDate: "2020-01-01",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var snap SnapshotResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Profile.Name != "Jane Doe" || len(snap.WorkExperiences) != 1 || snap.Educations == nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	resp = doJSON(t, router, http.MethodDelete, "/api/v1/profile/work-experiences/"+created.ID, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = doJSON(t, router, http.MethodDelete, "/api/v1/profile/work-experiences/"+created.ID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}

func TestSaveProfileRequiresName(t *testing.T) {
	router, _ := newTestRouter("user-1")
	resp := doJSON(t, router, http.MethodPut, "/api/v1/profile", ProfileInput{Email: "x@example.com"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
