package middleware

import (
	"net/http"

	"recstudio/internal/domain"
	"recstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireScheduler admits owners and admins, the roles allowed to change
// the schedule and studio records. It reads the role StudioAccess stored,
// so it must run inside a studio-scoped group.
func RequireScheduler() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("studio_role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Studio access not resolved")
			c.Abort()
			return
		}

		if !domain.StudioRole(role.(string)).CanManageSchedule() {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Owner or admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
