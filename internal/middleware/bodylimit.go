package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects oversized payloads before any domain logic runs. A
// declared Content-Length above the ceiling fails with 413, an unparsable one
// with 400, and the actual body is checked as well for clients that lie.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cl := c.GetHeader("Content-Length"); cl != "" {
			declared, err := strconv.ParseInt(cl, 10, 64)
			if err != nil || declared < 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid Content-Length"})
				return
			}
			if declared > maxBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
				return
			}
		}

		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
				return
			}
			if int64(len(body)) > maxBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		c.Next()
	}
}
