package gear

import (
	"errors"
	"net/http"
	"strconv"

	"recstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the per-session gear routes. Tenancy is resolved in
// the service from the acting user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions/:id/gear", h.AddGear)
	rg.GET("/sessions/:id/gear", h.ListGear)
	rg.DELETE("/sessions/:id/gear/:gearID", h.RemoveGear)
}

func (h *Handler) AddGear(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddGearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, warnings, err := h.service.AddAssignment(c.Request.Context(), sessionID, c.GetInt64("user_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"assignment": a,
		"warnings":   warnings,
	})
}

func (h *Handler) ListGear(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rows, warnings, err := h.service.ListAssignments(c.Request.Context(), sessionID, c.GetInt64("user_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"assignments": rows,
		"warnings":    warnings,
	})
}

func (h *Handler) RemoveGear(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	gearID, ok := pathID(c, "gearID")
	if !ok {
		return
	}

	if err := h.service.RemoveAssignment(c.Request.Context(), sessionID, gearID, c.GetInt64("user_id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.NoContent(c)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid gear fields")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Owner or admin role required")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
