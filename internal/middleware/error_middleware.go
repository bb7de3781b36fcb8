package middleware

import (
	"messagebox/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors recorded on the context by handlers. The
// handler that records an error also writes the response body, so this
// middleware only observes.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if l == nil || len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			l.ErrorCtx(c.Request.Context(), "request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Error(e.Err),
			)
		}
	}
}
