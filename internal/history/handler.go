package history

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.POST("/history", h.create)
	rg.GET("/history/:id", h.get)
	rg.PATCH("/history/:id", h.updateNote)
	rg.DELETE("/history/:id", h.delete)
	rg.POST("/history/:id/resumes", h.appendResume)
	rg.GET("/resumes/:id", h.getResume)
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		Company: c.Query("company"),
		Role:    c.Query("role"),
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Offset = parsed
		}
	}

	entries, applied, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), filter)
	if err != nil {
		writeError(c, err, "failed to list history")
		return
	}
	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toEntryResponse(e))
	}
	respond.OK(c, ListResponse{Items: items, Limit: applied.Limit, Offset: applied.Offset})
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	entry, record, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), SaveInput{
		CompanyName:    req.CompanyName,
		Role:           req.Role,
		JobDescription: req.JobDescription,
		Note:           req.Note,
		ResumeInput: ResumeInput{
			Resume:       req.Resume,
			Provider:     req.Provider,
			CostEstimate: req.CostEstimate,
		},
	})
	if err != nil {
		writeError(c, err, "failed to save history")
		return
	}
	c.Set(middleware.HistoryIDKey, entry.ID)
	c.Set(middleware.ResumeIDKey, record.ID)
	respond.Created(c, respond.ChildPath(c, entry.ID), CreateResponse{Entry: toEntryResponse(entry), Resume: toResumeResponse(record)})
}

func (h *Handler) get(c *gin.Context) {
	entry, resumes, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to load history entry")
		return
	}
	out := DetailResponse{EntryResponse: toEntryResponse(entry), Resumes: make([]ResumeResponse, 0, len(resumes))}
	for _, r := range resumes {
		out.Resumes = append(out.Resumes, toResumeResponse(r))
	}
	respond.OK(c, out)
}

func (h *Handler) updateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	entry, err := h.Svc.UpdateNote(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Note)
	if err != nil {
		writeError(c, err, "failed to update note")
		return
	}
	respond.OK(c, toEntryResponse(entry))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete history entry")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) appendResume(c *gin.Context) {
	var req AppendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	record, err := h.Svc.AppendResume(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), ResumeInput{
		Resume:       req.Resume,
		Provider:     req.Provider,
		CostEstimate: req.CostEstimate,
	})
	if err != nil {
		writeError(c, err, "failed to append resume")
		return
	}
	c.Set(middleware.ResumeIDKey, record.ID)
	respond.Created(c, resumeLocation(c, record.ID), toResumeResponse(record))
}

func (h *Handler) getResume(c *gin.Context) {
	record, err := h.Svc.GetResume(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, toResumeResponse(record))
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "history record not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

// resumeLocation maps /<prefix>/history/:id/resumes onto /<prefix>/resumes/<resumeID>.
func resumeLocation(c *gin.Context, resumeID string) string {
	prefix := strings.TrimSuffix(c.Request.URL.Path, "/history/"+c.Param("id")+"/resumes")
	return path.Join(prefix, "resumes", resumeID)
}
