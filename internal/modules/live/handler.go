package live

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"recstudio/internal/domain"
	jwtsvc "recstudio/internal/pkg/jwt"
	"recstudio/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // CORS middleware owns origin policy for the rest of the API
}

// MemberRepository checks board viewers for membership.
type MemberRepository interface {
	Get(ctx context.Context, studioID, userID int64) (*domain.Member, error)
}

type Handler struct {
	hub     *Hub
	jwt     *jwtsvc.Service
	members MemberRepository
	log     *zerolog.Logger
}

func NewHandler(hub *Hub, jwt *jwtsvc.Service, members MemberRepository, log *zerolog.Logger) *Handler {
	return &Handler{hub: hub, jwt: jwt, members: members, log: log}
}

// RegisterRoutes mounts the board endpoint on the bare v1 group. Browsers
// cannot set headers on a websocket dial, so the token rides in the query
// and the JWT middleware is bypassed.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/studios/:id/board", h.HandleBoard)
}

// HandleBoard upgrades GET /studios/:id/board?token=JWT into a push-only
// schedule feed for studio members.
func (h *Handler) HandleBoard(c *gin.Context) {
	studioID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || studioID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid studio ID")
		return
	}

	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token query parameter required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	if _, err := h.members.Get(c.Request.Context(), studioID, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "STORAGE", "Failed to check studio access")
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Int64("studio_id", studioID).Msg("board upgrade failed")
		return
	}

	h.hub.Register(studioID, conn)
	h.log.Info().Int64("studio_id", studioID).Int64("user_id", claims.UserID).Msg("board connected")

	done := make(chan struct{})
	go h.pingLoop(conn, done)

	h.readLoop(conn)
	close(done)

	h.hub.Unregister(studioID, conn)
	h.log.Info().Int64("studio_id", studioID).Int64("user_id", claims.UserID).Msg("board disconnected")
}

func (h *Handler) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// WriteControl is safe alongside the hub's broadcasts.
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop blocks until the peer goes away. The board is push-only, so
// reads exist to notice pongs and the close.
func (h *Handler) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
