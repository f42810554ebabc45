package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/history"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/shared/telemetry"
)

const (
	headerProvider     = "X-Resume-Provider"
	headerCostEstimate = "X-Cost-Estimate"
	headerHistoryID    = "X-Job-History-Id"
	headerResumeID     = "X-Resume-Record-Id"

	// multipart overhead allowed on top of the file limit
	formOverhead = 1 << 20
)

// HistoryRecorder persists generated resumes.
type HistoryRecorder interface {
	Save(ctx context.Context, userID string, in history.SaveInput) (history.Entry, history.ResumeRecord, error)
	AppendResume(ctx context.Context, userID, entryID string, in history.ResumeInput) (history.ResumeRecord, error)
	GetEntry(ctx context.Context, userID, entryID string) (history.Entry, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc     *Service
	History HistoryRecorder
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, hist HistoryRecorder) *Handler {
	return &Handler{Svc: svc, History: hist}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/history/:id/regenerate", h.regenerate)
}

// GenerateRequest is the JSON form of POST /generate. Multipart requests use the same field names.
type GenerateRequest struct {
	JobDescription string  `json:"jobDescription"`
	CompanyName    string  `json:"companyName"`
	Role           string  `json:"role"`
	Note           *string `json:"note"`
	Save           bool    `json:"save"`
}

func (h *Handler) generate(c *gin.Context) {
	req, err := h.bindRequest(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	result, err := h.Svc.Generate(c.Request.Context(), userID, req.JobDescription)
	if err != nil {
		writeError(c, err)
		return
	}
	writeResultHeaders(c, result)

	if req.Save {
		h.persist(c, userID, func(ctx context.Context) (string, string, error) {
			entry, record, err := h.History.Save(ctx, userID, history.SaveInput{
				CompanyName:    req.CompanyName,
				Role:           req.Role,
				JobDescription: req.JobDescription,
				Note:           req.Note,
				ResumeInput:    resumeInput(result),
			})
			return entry.ID, record.ID, err
		})
	}
	respond.OK(c, result.Resume)
}

func (h *Handler) regenerate(c *gin.Context) {
	if h.History == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "history is not configured", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		writeError(c, ErrUnauthenticated)
		return
	}
	entryID := c.Param("id")
	entry, err := h.History.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "history record not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history entry", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), userID, entry.JobDescription)
	if err != nil {
		writeError(c, err)
		return
	}
	writeResultHeaders(c, result)
	h.persist(c, userID, func(ctx context.Context) (string, string, error) {
		record, err := h.History.AppendResume(ctx, userID, entry.ID, resumeInput(result))
		return entry.ID, record.ID, err
	})
	respond.OK(c, result.Resume)
}

// persist stores the result. Failures are logged only: the caller still gets the resume.
func (h *Handler) persist(c *gin.Context, userID string, save func(ctx context.Context) (historyID, resumeID string, err error)) {
	if h.History == nil {
		telemetry.Warn("generation.save_skipped", map[string]any{"user_id": userID, "reason": "history not configured"})
		return
	}
	historyID, resumeID, err := save(c.Request.Context())
	if err != nil {
		telemetry.Error("generation.save_failed", map[string]any{
			"user_id":    userID,
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err,
		})
		return
	}
	c.Set(middleware.HistoryIDKey, historyID)
	c.Set(middleware.ResumeIDKey, resumeID)
	c.Header(headerHistoryID, historyID)
	c.Header(headerResumeID, resumeID)
}

func (h *Handler) bindRequest(c *gin.Context) (GenerateRequest, error) {
	var req GenerateRequest
	if c.ContentType() != "multipart/form-data" {
		if err := c.ShouldBindJSON(&req); err != nil {
			return GenerateRequest{}, errors.New("invalid request body")
		}
		return req, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxUploadBytes+formOverhead)
	req.JobDescription = c.PostForm("jobDescription")
	req.CompanyName = c.PostForm("companyName")
	req.Role = c.PostForm("role")
	if note, ok := c.GetPostForm("note"); ok {
		req.Note = &note
	}
	if raw := c.PostForm("save"); raw != "" {
		save, err := strconv.ParseBool(raw)
		if err != nil {
			return GenerateRequest{}, errors.New("save must be a boolean")
		}
		req.Save = save
	}

	fileHeader, err := c.FormFile("jobDescriptionFile")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return GenerateRequest{}, errors.New("invalid multipart body")
	}
	if fileHeader.Size > extract.MaxUploadBytes {
		return GenerateRequest{}, fmt.Errorf("jobDescriptionFile exceeds %d bytes", extract.MaxUploadBytes)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return GenerateRequest{}, errors.New("unable to read jobDescriptionFile")
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, extract.MaxUploadBytes+1))
	if err != nil {
		return GenerateRequest{}, errors.New("unable to read jobDescriptionFile")
	}
	text, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		return GenerateRequest{}, fmt.Errorf("jobDescriptionFile: %v", err)
	}
	if strings.TrimSpace(req.JobDescription) != "" {
		req.JobDescription = strings.TrimSpace(req.JobDescription) + "\n\n" + text
	} else {
		req.JobDescription = text
	}
	return req, nil
}

func resumeInput(result Result) history.ResumeInput {
	cost := result.CostEstimate
	return history.ResumeInput{
		Resume:       result.Resume,
		Provider:     string(result.Provider),
		CostEstimate: &cost,
	}
}

func writeResultHeaders(c *gin.Context, result Result) {
	c.Set(middleware.ProviderKey, string(result.Provider))
	c.Header(headerProvider, string(result.Provider))
	c.Header(headerCostEstimate, strconv.FormatFloat(result.CostEstimate, 'f', 4, 64))
}

func writeError(c *gin.Context, err error) {
	status, code, message := HTTPStatus(err)
	if errors.Is(err, ErrBadRequest) {
		message = strings.TrimPrefix(err.Error(), ErrBadRequest.Error()+": ")
	}
	respond.Error(c, status, code, message, nil)
}
