package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
)

// PipelineAuth creates a Gin middleware that validates the X-API-Key
// header against the configured pipeline API key. It guards the narrow
// endpoint the external market-data script posts snapshots to.
func PipelineAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWith(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWith(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode, gin.H{
		"error": gin.H{"code": err.Code, "message": err.Message},
	})
}
