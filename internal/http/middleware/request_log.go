package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/courseforge-backend/internal/platform/ctxutil"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request after the handler chain
// finishes. Client errors log at warn and server errors at error.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := accessFields(c, status, time.Since(start))
		switch {
		case status >= 500:
			log.Error("request completed", fields...)
		case status >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}

func accessFields(c *gin.Context, status int, elapsed time.Duration) []interface{} {
	ctx := c.Request.Context()
	fields := []interface{}{
		"method", c.Request.Method,
		"route", routeOf(c),
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
	}
	fields = append(fields, ctxutil.GetTraceData(ctx).LogFields()...)
	if uid := ctxutil.UserID(ctx); uid != uuid.Nil {
		fields = append(fields, "user_id", uid.String())
	}
	if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
		fields = append(fields, "errors", errs.String())
	}
	return fields
}

func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
