package profiles

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.save)
	rg.POST("/profile/work-experiences", h.addWork)
	rg.PUT("/profile/work-experiences/:id", h.updateWork)
	rg.DELETE("/profile/work-experiences/:id", h.deleteWork)
	rg.POST("/profile/educations", h.addEducation)
	rg.PUT("/profile/educations/:id", h.updateEducation)
	rg.DELETE("/profile/educations/:id", h.deleteEducation)
}

func (h *Handler) get(c *gin.Context) {
	snap, err := h.Svc.Snapshot(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load profile")
		return
	}
	respond.OK(c, toSnapshotResponse(snap))
}

func (h *Handler) save(c *gin.Context) {
	var req ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	profile, err := h.Svc.SaveProfile(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to save profile")
		return
	}
	respond.OK(c, toProfileResponse(profile))
}

func (h *Handler) addWork(c *gin.Context) {
	var req WorkExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	exp, err := h.Svc.AddWorkExperience(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to add work experience")
		return
	}
	respond.Created(c, respond.ChildPath(c, exp.ID), toWorkExperienceResponse(exp))
}

func (h *Handler) updateWork(c *gin.Context) {
	var req WorkExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	exp, err := h.Svc.UpdateWorkExperience(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err, "failed to update work experience")
		return
	}
	respond.OK(c, toWorkExperienceResponse(exp))
}

func (h *Handler) deleteWork(c *gin.Context) {
	if err := h.Svc.DeleteWorkExperience(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete work experience")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) addEducation(c *gin.Context) {
	var req EducationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	edu, err := h.Svc.AddEducation(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to add education")
		return
	}
	respond.Created(c, respond.ChildPath(c, edu.ID), toEducationResponse(edu))
}

func (h *Handler) updateEducation(c *gin.Context) {
	var req EducationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	edu, err := h.Svc.UpdateEducation(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err, "failed to update education")
		return
	}
	respond.OK(c, toEducationResponse(edu))
}

func (h *Handler) deleteEducation(c *gin.Context) {
	if err := h.Svc.DeleteEducation(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete education")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		respond.Error(c, http.StatusNotFound, "profile_not_found", "profile not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
