package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/models"
)

// APIKeyMiddleware compares the apikey query parameter against the one
// secret-sourced key. A mismatch is audit-logged and aborts with 403 before
// any contract-system call is made.
func APIKeyMiddleware(key string, sink audit.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := strings.TrimSpace(c.Query("apikey"))
		if supplied != key {
			sink.Error(c.Request.Context(), "validate_api_key",
				models.ErrWrongAPIKey.Error(),
				map[string]string{"received_api_key": supplied})
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": models.ErrWrongAPIKey.Error()})
			return
		}
		c.Next()
	}
}
