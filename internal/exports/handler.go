package exports

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/resume/model"
	"resume-tailor/resume/render"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/export", h.exportStored)
	rg.POST("/exports/:format", h.exportPosted)
}

func (h *Handler) exportStored(c *gin.Context) {
	format, ok := parseFormat(c.DefaultQuery("format", string(render.FormatPDF)))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "bad_request", "format must be pdf or docx", nil)
		return
	}
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)
	doc, err := h.Svc.ExportStored(c.Request.Context(), middleware.UserIDFromContext(c), resumeID, format)
	if err != nil {
		writeError(c, err)
		return
	}
	writeDocument(c, doc)
}

func (h *Handler) exportPosted(c *gin.Context) {
	format, ok := parseFormat(c.Param("format"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "bad_request", "format must be pdf or docx", nil)
		return
	}
	var resume model.GeneratedResume
	if err := c.ShouldBindJSON(&resume); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	doc, err := h.Svc.ExportResume(c.Request.Context(), resume, format)
	if err != nil {
		writeError(c, err)
		return
	}
	writeDocument(c, doc)
}

func parseFormat(raw string) (render.Format, bool) {
	return render.ParseFormat(strings.TrimPrefix(strings.TrimSpace(raw), "."))
}

func writeDocument(c *gin.Context, doc Document) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "bad_request", "format must be pdf or docx", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export resume", nil)
	}
}
