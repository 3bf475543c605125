package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireReady fails fast with 503 until ready reports true. Routes that do
// not touch the database (health, metrics, docs) should be registered outside it.
func RequireReady(ready func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil && !ready() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "Service Unavailable"})
			return
		}
		c.Next()
	}
}
