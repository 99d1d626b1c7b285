package middleware

import (
	"time"

	"casedesk-backend/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger scopes base to the request and writes one access line per request.
// Server errors log at error level, client errors at warn.
func Logger(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = logger.L()
	}
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		scoped := base.With(logger.RequestIDFrom(ctx))
		c.Request = c.Request.WithContext(logger.ToContext(ctx, scoped))

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			logger.Method(c.Request.Method),
			logger.Path(c.Request.URL.Path),
			logger.Status(status),
			logger.Duration(time.Since(start)),
			logger.ClientIP(c.ClientIP()),
		}
		if uid, ok := c.Get(KeyUserID); ok {
			fields = append(fields, logger.UserID(uid.(string)))
		}
		switch {
		case status >= 500:
			scoped.Error("request", fields...)
		case status >= 400:
			scoped.Warn("request", fields...)
		default:
			scoped.Info("request", fields...)
		}
	}
}
