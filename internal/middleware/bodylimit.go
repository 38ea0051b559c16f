package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps inbound request bodies at maxBytes. Ingest payloads
// carry before/after entity snapshots and can be sizable, so the cap
// must leave them room; reads past the cap fail inside the handler's
// JSON bind, which reports the oversized payload as a bad request.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
