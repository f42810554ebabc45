package server

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/exports"
	"resume-tailor/internal/generation"
	"resume-tailor/internal/history"
	"resume-tailor/internal/profiles"
	"resume-tailor/internal/settings"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/shared/storage/db"
)

const (
	apiPrefix     = "/api/v1"
	healthPath    = apiPrefix + "/health"
	generateGroup = "GENERATE"
)

// RouterDeps are the feature handlers mounted under /api/v1. Nil handlers are skipped.
// DB is nil when repositories are in memory.
type RouterDeps struct {
	Config            config.Config
	DB                *sql.DB
	ProfileHandler    *profiles.Handler
	SettingsHandler   *settings.Handler
	HistoryHandler    *history.Handler
	GenerationHandler *generation.Handler
	ExportHandler     *exports.Handler
	RateLimiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(healthPath),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				generateGroup: middleware.PerMinute(cfg.GenerateRatePerMinute, cfg.GenerateBurst),
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		status := db.Status(c.Request.Context(), deps.DB)
		code := http.StatusOK
		if status == db.StatusDown {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, gin.H{"ok": code == http.StatusOK, "database": status})
	})
	registerMeRoutes(api, cfg.AdminEmails)

	admin := api.Group("/admin", middleware.RequireAdmin(cfg.AdminEmails))
	admin.GET("/metrics", metrics.Handler())

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.RegisterRoutes(api)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup puts provider-calling routes in the GENERATE bucket. Everything else is unlimited.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	if path == apiPrefix+"/generate" {
		return generateGroup
	}
	if strings.HasPrefix(path, apiPrefix+"/history/") && strings.HasSuffix(path, "/regenerate") {
		return generateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
