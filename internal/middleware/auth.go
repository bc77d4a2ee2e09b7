package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthTokenKey is the gin context key under which the accepted bearer token
// is stored for downstream middleware.
const AuthTokenKey = "authToken"

// ExemptPaths returns the fixed allow-list of paths served without
// authentication or rate limiting.
func ExemptPaths() map[string]bool {
	return map[string]bool{
		"/api/v1/health": true,
		"/api/v1/ready":  true,
		"/metrics":       true,
	}
}

// ExtractBearer returns the credential from an "Authorization: Bearer ..."
// header, or "" when the header is missing or malformed.
func ExtractBearer(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// BearerAuth guards every non-exempt path with a constant-time comparison
// against the shared secret. Exempt paths skip the check entirely, malformed
// headers included.
func BearerAuth(secret string, exempt map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if exempt[c.Request.URL.Path] {
			c.Next()
			return
		}

		token := ExtractBearer(c.GetHeader("Authorization"))
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(AuthTokenKey, token)
		c.Next()
	}
}
