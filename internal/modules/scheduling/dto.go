package scheduling

import "time"

// CreateSessionRequest books a slot using a studio-local date and clock times.
// EndTime is optional: absent means start plus the studio's default length,
// and a value at or before StartTime rolls to the next day (overnight run).
type CreateSessionRequest struct {
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:MM
	EndTime    string `json:"end_time"`                      // HH:MM
	RoomID     int64  `json:"room_id" binding:"required"`
	ClientID   int64  `json:"client_id" binding:"required"`
	EngineerID *int64 `json:"engineer_id"`
	Notes      string `json:"notes"`
}

// UpdateSessionRequest edits a session with absolute timestamps. Only supplied
// fields change. engineer_id 0 clears the assignment; a status equal to the
// current one is a no-op, anything else must be a legal transition.
type UpdateSessionRequest struct {
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	RoomID     *int64     `json:"room_id"`
	ClientID   *int64     `json:"client_id"`
	EngineerID *int64     `json:"engineer_id"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}

// UpdateStatusRequest moves a session through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DefaultsRequest partially updates the per-studio scheduling defaults.
type DefaultsRequest struct {
	SessionHours  *int `json:"default_session_length_hours"`
	BufferMinutes *int `json:"default_buffer_minutes"`
}
