package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/telemetry"
)

// Context keys handlers set so the request log can carry domain ids.
const (
	HistoryIDKey = "historyId"
	ResumeIDKey  = "resumeId"
	ProviderKey  = "provider"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{HistoryIDKey, ResumeIDKey, ProviderKey} {
			if val := c.GetString(key); val != "" {
				fields[snakeKey(key)] = val
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func snakeKey(key string) string {
	switch key {
	case HistoryIDKey:
		return "history_id"
	case ResumeIDKey:
		return "resume_id"
	default:
		return key
	}
}
