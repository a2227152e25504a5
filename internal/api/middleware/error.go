package middleware

import (
	"net/http"

	"bess-degradation/internal/api/models"
	"bess-degradation/internal/logging"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers panics into a 500 response
func ErrorHandler(log logging.Logger) gin.HandlerFunc {
	if log == nil {
		log = logging.NopLogger{}
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		detail := "An unexpected error occurred"
		if msg, ok := recovered.(string); ok {
			detail = msg
		} else if err, ok := recovered.(error); ok {
			detail = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:  "internal_error",
			Detail: detail,
		})
	})
}
