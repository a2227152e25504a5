package middleware

import (
	"time"

	"bess-degradation/internal/logging"

	"github.com/gin-gonic/gin"
)

// Logger logs one structured entry per request. Client and server errors
// are logged at warn level.
func Logger(log logging.Logger) gin.HandlerFunc {
	if log == nil {
		log = logging.NopLogger{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		if c.Writer.Status() >= 400 {
			log.Warnw("request", fields)
			return
		}
		log.Debugw("request", fields)
	}
}
