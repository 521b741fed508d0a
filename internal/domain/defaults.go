package domain

import "time"

// StudioDefaults holds the per-studio scheduling fallbacks: session length
// applied when a create request omits the end time, and an informational
// setup buffer. One row per studio, created lazily on first read.
type StudioDefaults struct {
	StudioID      int64     `json:"studio_id" gorm:"primaryKey"`
	SessionHours  int       `json:"default_session_length_hours" gorm:"column:default_session_length_hours"`
	BufferMinutes int       `json:"default_buffer_minutes" gorm:"column:default_buffer_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
