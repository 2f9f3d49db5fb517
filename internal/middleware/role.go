package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/littlelemon/littlelemon-api/internal/models"
)

// RequireRole rejects requests whose authenticated caller does not hold the
// required role. Must run after RequireAuth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userID"); !exists {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
			c.Abort()
			return
		}

		role, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "User role not found in token"))
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok || userRole != requiredRole {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Insufficient permissions",
				map[string]interface{}{"required_role": requiredRole}))
			c.Abort()
			return
		}

		c.Next()
	}
}
