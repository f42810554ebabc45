package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/auth"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup, adminEmails []string) {
	rg.GET("/me", func(c *gin.Context) {
		meHandler(c, adminEmails)
	})
}

func meHandler(c *gin.Context, adminEmails []string) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthenticated", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"userId":  userID,
		"isAdmin": false,
	}
	if email := middleware.UserEmailFromContext(c); email != "" {
		response["email"] = email
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		if claims.Name != "" {
			response["name"] = claims.Name
		}
		response["isAdmin"] = auth.IsAdmin(claims, adminEmails)
	}

	respond.JSON(c, http.StatusOK, response)
}
