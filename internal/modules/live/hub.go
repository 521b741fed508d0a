package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ScheduleEvent is pushed to every open board of a studio when its
// schedule moves.
type ScheduleEvent struct {
	Type      string    `json:"type"`
	SessionID int64     `json:"session_id"`
	At        time.Time `json:"at"`
}

// Hub fans schedule events out to board subscribers, keyed by studio.
// Writes are serialized through the hub mutex, so broadcasts never
// interleave on a connection.
type Hub struct {
	mu     sync.Mutex
	boards map[int64]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{boards: make(map[int64]map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(studioID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.boards[studioID] == nil {
		h.boards[studioID] = make(map[*websocket.Conn]struct{})
	}
	h.boards[studioID][conn] = struct{}{}
}

func (h *Hub) Unregister(studioID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.boards[studioID]; ok {
		if _, ok := set[conn]; ok {
			_ = conn.Close()
			delete(set, conn)
		}
		if len(set) == 0 {
			delete(h.boards, studioID)
		}
	}
}

// Broadcast pushes an event to every board watching the studio. A failed
// write drops the connection.
func (h *Hub) Broadcast(studioID int64, event any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.boards[studioID] {
		if err := conn.WriteJSON(event); err != nil {
			_ = conn.Close()
			delete(h.boards[studioID], conn)
		}
	}
}

// NotifyScheduleChanged satisfies the scheduling notifier. Fire-and-forget:
// a board that misses an event catches up on its next full load.
func (h *Hub) NotifyScheduleChanged(studioID int64, event string, sessionID int64) {
	h.Broadcast(studioID, ScheduleEvent{Type: event, SessionID: sessionID, At: time.Now().UTC()})
}

// Close drops every connection, for shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for studioID, set := range h.boards {
		for conn := range set {
			_ = conn.Close()
		}
		delete(h.boards, studioID)
	}
}
