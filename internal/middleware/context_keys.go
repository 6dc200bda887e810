package middleware

import "github.com/gin-gonic/gin"

// callerIDKey is the key used to store the verified caller identity in the
// request context.
const callerIDKey = contextKey("callerID")

// GetCallerIDFromContext retrieves the caller's user ID from the Gin context.
// It returns the ID and a boolean indicating whether it was found.
func GetCallerIDFromContext(c *gin.Context) (string, bool) {
	callerVal, exists := c.Get(string(callerIDKey))
	if !exists {
		// Check the request context as well; tests may set it there.
		if v := c.Request.Context().Value(callerIDKey); v != nil {
			if id, ok := v.(string); ok {
				return id, true
			}
		}
		return "", false
	}

	callerID, ok := callerVal.(string)
	if !ok {
		return "", false
	}
	return callerID, true
}
