package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CallerIDHeader carries the caller identity verified by the upstream web
// layer. The ledger engine trusts it and never authenticates itself.
const CallerIDHeader = "X-Caller-ID"

// CallerIdentity extracts the pre-authenticated caller identity from the
// request header and stores it in the context for handlers and services.
// Requests without an identity are rejected.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetHeader(CallerIDHeader)
		if callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}
		c.Set(string(callerIDKey), callerID)
		c.Next()
	}
}
