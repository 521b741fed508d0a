package domain

import "time"

// Room is a bookable space inside a studio: live room, control room,
// vocal booth. HourlyRate is display text, not billed.
type Room struct {
	ID          int64     `json:"id"`
	StudioID    int64     `json:"studio_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	HourlyRate  string    `json:"hourly_rate,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
