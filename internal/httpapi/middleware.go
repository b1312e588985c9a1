package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if project := c.Param("project"); project != "" {
			attrs = append(attrs, "project", project)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.ErrorContext(c.Request.Context(), "http_request", attrs...)
		case c.Writer.Status() >= 400:
			logger.WarnContext(c.Request.Context(), "http_request", attrs...)
		default:
			logger.InfoContext(c.Request.Context(), "http_request", attrs...)
		}
	}
}
