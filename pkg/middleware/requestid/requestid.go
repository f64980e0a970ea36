// Package requestid tags every request with a correlation id that is echoed back to the
// client and attached to access log lines.
package requestid

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the correlation id in both directions.
const Header = "X-Request-ID"

// ContextKey is the gin context key the id is stored under.
const ContextKey = "requestID"

var acceptable = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// Assign reuses a well-formed inbound id and mints a UUID otherwise.
func Assign() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if !acceptable.MatchString(id) {
			id = uuid.NewString()
		}
		c.Set(ContextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

// FromContext returns the id Assign stored, or "" outside the middleware.
func FromContext(c *gin.Context) string {
	return c.GetString(ContextKey)
}
