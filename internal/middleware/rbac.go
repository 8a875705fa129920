package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
	appErrors "github.com/asistencia-escolar/asistencia-api/pkg/errors"
	"github.com/asistencia-escolar/asistencia-api/pkg/response"
)

// RequireRoles blocks callers whose token role is not in the allowed set.
// Per-course access is decided in the services; this gate only filters
// whole route groups (school-wide stats, exports).
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
