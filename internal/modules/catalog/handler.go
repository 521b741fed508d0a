package catalog

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterStudioRoutes mounts the record-keeping routes on a studio-scoped
// group. Reads are open to any member; writes need the scheduler role.
func (h *Handler) RegisterStudioRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.POST("/rooms", middleware.RequireScheduler(), h.CreateRoom)
	rg.PUT("/rooms/:roomID", middleware.RequireScheduler(), h.UpdateRoom)
	rg.GET("/clients", h.ListClients)
	rg.POST("/clients", middleware.RequireScheduler(), h.CreateClient)
	rg.GET("/gear", h.ListGear)
	rg.POST("/gear", middleware.RequireScheduler(), h.CreateGear)
}

/* ---------- ROOMS ---------- */

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), c.GetInt64("studio_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("roomID"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), c.GetInt64("studio_id"), roomID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context(), c.GetInt64("studio_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

/* ---------- CLIENTS ---------- */

func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), c.GetInt64("studio_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"client": client})
}

func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.service.ListClients(c.Request.Context(), c.GetInt64("studio_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"clients": clients})
}

/* ---------- GEAR ---------- */

func (h *Handler) CreateGear(c *gin.Context) {
	var req CreateGearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.CreateGear(c.Request.Context(), c.GetInt64("studio_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"gear": item})
}

func (h *Handler) ListGear(c *gin.Context) {
	items, err := h.service.ListGear(c.Request.Context(), c.GetInt64("studio_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"gear": items})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid fields", fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
