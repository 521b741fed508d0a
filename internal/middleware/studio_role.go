package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"recstudio/internal/domain"
	"recstudio/internal/pkg/response"
	"recstudio/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StudioAccess gates /studios/:id routes on membership. A non-member gets
// the same 404 a missing studio would give, so tenancy is not probeable.
type StudioAccess struct {
	members *repository.MemberRepository
}

func NewStudioAccess(members *repository.MemberRepository) *StudioAccess {
	return &StudioAccess{members: members}
}

func (sa *StudioAccess) lookup(c *gin.Context) (*domain.Member, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		c.Abort()
		return nil, false
	}

	studioID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		c.Abort()
		return nil, false
	}

	member, err := sa.members.Get(c.Request.Context(), studioID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "STORAGE", "Failed to check studio access")
		}
		c.Abort()
		return nil, false
	}

	c.Set("studio_id", studioID)
	c.Set("studio_role", string(member.Role))
	return member, true
}

// RequireMember admits any member of the studio in the :id param. Routes
// needing the scheduler role stack RequireScheduler on top.
func (sa *StudioAccess) RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sa.lookup(c); !ok {
			return
		}
		c.Next()
	}
}
