package domain

import "time"

// Client is a studio-scoped customer record a session is booked for.
type Client struct {
	ID        int64     `json:"id"`
	StudioID  int64     `json:"studio_id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
