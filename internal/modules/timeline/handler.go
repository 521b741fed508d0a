package timeline

import (
	"errors"
	"net/http"
	"time"

	"recstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterStudioRoutes mounts the schedule board under a studio-scoped
// group. The group's access middleware already guarantees membership, and
// the view is read-only, so no role gate applies.
func (h *Handler) RegisterStudioRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule", h.GetSchedule)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	view, err := h.service.ScheduleView(c.Request.Context(), c.GetInt64("studio_id"), time.Now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load schedule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedule": view})
}
