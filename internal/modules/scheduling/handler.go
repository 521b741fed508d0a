package scheduling

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"recstudio/internal/middleware"
	"recstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterStudioRoutes mounts the studio-scoped schedule routes. The group
// already carries the studio access middleware, so every caller here is a
// member; mutations additionally require the scheduler role.
func (h *Handler) RegisterStudioRoutes(rg *gin.RouterGroup) {
	rg.GET("/defaults", h.GetDefaults)
	rg.PUT("/defaults", middleware.RequireScheduler(), h.SetDefaults)
	rg.POST("/sessions", middleware.RequireScheduler(), h.CreateSession)
	rg.GET("/sessions", h.ListSessions)
}

// RegisterSessionRoutes mounts the routes addressed by bare session id.
// Tenancy is resolved in the service from the acting user.
func (h *Handler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id", h.GetSession)
	rg.PUT("/sessions/:id", h.UpdateSession)
	rg.PATCH("/sessions/:id/status", h.UpdateStatus)
	rg.DELETE("/sessions/:id", h.DeleteSession)
}

func (h *Handler) GetDefaults(c *gin.Context) {
	d, err := h.service.GetDefaults(c.Request.Context(), c.GetInt64("studio_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"defaults": d})
}

func (h *Handler) SetDefaults(c *gin.Context) {
	var req DefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.SetDefaults(c.Request.Context(), c.GetInt64("studio_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"defaults": d})
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sess, err := h.service.CreateSession(c.Request.Context(), c.GetInt64("studio_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"session": sess})
}

func (h *Handler) ListSessions(c *gin.Context) {
	rows, err := h.service.ListSessions(c.Request.Context(), c.GetInt64("studio_id"),
		c.Query("from"), c.Query("to"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sessions": rows})
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}

	row, err := h.service.GetSession(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": row})
}

func (h *Handler) UpdateSession(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sess, err := h.service.UpdateSession(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sess, err := h.service.UpdateSessionStatus(c.Request.Context(), id, c.GetInt64("user_id"), req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.NoContent(c)
}

func sessionIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid session id")
		return 0, false
	}
	return id, true
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "SCHEDULE_CONFLICT",
			conflictMessage(conflict), conflict)
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid session fields")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Owner or admin role required")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown session status")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change not allowed from the current state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func conflictMessage(e *ConflictError) string {
	who := e.With
	if who == "" {
		who = "another session"
	}
	return fmt.Sprintf("The %s is already booked by %s from %s to %s",
		e.Resource, who, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
