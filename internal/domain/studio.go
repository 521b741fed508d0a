package domain

import "time"

// Studio is the tenancy root. Timezone is an IANA name ("Europe/Berlin");
// empty means the server's local zone.
type Studio struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty"`
}
