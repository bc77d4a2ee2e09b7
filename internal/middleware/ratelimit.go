package middleware

import (
	"net/http"
	"time"

	"agentboard/internal/ratelimit"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RateLimitConfig carries each limiter's own window length and capacity; the
// address-keyed and credential-keyed limits are tuned independently.
type RateLimitConfig struct {
	IPWindow    time.Duration
	TokenWindow time.Duration
	PerIP       int
	PerToken    int
}

// RateLimit applies two independent sliding-window checks, keyed by client
// address and by bearer credential. The address check runs first; a rejection
// by either short-circuits without recording on the other. Exempt paths
// bypass limiting entirely.
func RateLimit(limiter *ratelimit.Limiter, cfg RateLimitConfig, exempt map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if exempt[c.Request.URL.Path] {
			c.Next()
			return
		}

		ip := c.ClientIP()
		token := ExtractBearer(c.GetHeader("Authorization"))
		if token == "" {
			token = "anonymous"
		}

		if !limiter.Allow("ip:"+ip, cfg.IPWindow, cfg.PerIP) {
			logRateLimited(ip, token)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		if !limiter.Allow("token:"+token, cfg.TokenWindow, cfg.PerToken) {
			logRateLimited(ip, token)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}

func logRateLimited(ip, token string) {
	if len(token) > 6 {
		token = token[:6]
	}
	log.WithFields(log.Fields{"ip": ip, "token": token}).Warn("Rate limit exceeded")
}
