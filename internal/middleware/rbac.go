package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/models"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

// RequireRoles lets the request through only when the claims set by JWT carry one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "Not authorized as admin"))
			return
		}
		c.Next()
	}
}

// Claims returns the claims stored by JWT or OptionalJWT.
func Claims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}
