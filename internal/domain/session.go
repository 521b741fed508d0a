package domain

import "time"

type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionNoShow     SessionStatus = "no_show"
)

// statusFinished is a legacy input alias for completed. It is never stored.
const statusFinished = "finished"

type Session struct {
	ID         int64         `json:"id"`
	StudioID   int64         `json:"studio_id"`
	RoomID     int64         `json:"room_id" validate:"required"`
	ClientID   int64         `json:"client_id" validate:"required"`
	EngineerID *int64        `json:"engineer_id,omitempty"`
	StartTime  time.Time     `json:"start_time" validate:"required"`
	EndTime    time.Time     `json:"end_time" validate:"required"`
	Status     SessionStatus `json:"status"`
	Notes      string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Client   *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Room     *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Engineer *User   `json:"engineer,omitempty" gorm:"foreignKey:EngineerID"`
}

// NormalizeSessionStatus maps raw input to a canonical stored status.
// "finished" collapses to completed; anything else outside the enum is
// rejected, so derived display states like "live" never reach storage.
func NormalizeSessionStatus(raw string) (SessionStatus, bool) {
	switch SessionStatus(raw) {
	case SessionScheduled, SessionInProgress, SessionCompleted, SessionCancelled, SessionNoShow:
		return SessionStatus(raw), true
	}
	if raw == statusFinished {
		return SessionCompleted, true
	}
	return "", false
}

// CanTransition reports whether a stored status may move directly to next.
// completed and no_show are terminal; a cancelled session may be restored
// to scheduled.
func CanTransition(from, to SessionStatus) bool {
	switch from {
	case SessionScheduled:
		return to == SessionInProgress || to == SessionCompleted || to == SessionCancelled
	case SessionInProgress:
		return to == SessionCompleted || to == SessionCancelled
	case SessionCancelled:
		return to == SessionScheduled
	default:
		return false
	}
}

// IsActive reports whether the session is running at the given instant:
// now inside [StartTime, EndTime) and the status neither cancelled nor
// completed. Display state only, never persisted.
func (s *Session) IsActive(now time.Time) bool {
	if s.Status == SessionCancelled || s.Status == SessionCompleted {
		return false
	}
	return !now.Before(s.StartTime) && now.Before(s.EndTime)
}
