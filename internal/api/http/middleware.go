package apiHttp

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware allows the configured origins, falling back to allow-all
// when no list is configured.
func corsMiddleware(domains []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(domains))
	for _, d := range domains {
		if d = strings.TrimSpace(d); d != "" {
			allowed[d] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if len(allowed) == 0 {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "*")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method != http.MethodOptions {
			c.Next()
		} else {
			c.AbortWithStatus(http.StatusOK)
		}
	}
}
