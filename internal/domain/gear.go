package domain

import "time"

// Gear is a studio-scoped inventory item. Quantity 0 means the stock is not
// tracked and availability warnings skip it.
type Gear struct {
	ID        int64     `json:"id"`
	StudioID  int64     `json:"studio_id"`
	Name      string    `json:"name" validate:"required"`
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model,omitempty"`
	Category  string    `json:"category,omitempty"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GearAssignment attaches one unit of gear to a session. (SessionID, GearID)
// is unique; repeating an add is a no-op.
type GearAssignment struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id" gorm:"uniqueIndex:idx_gear_once_per_session"`
	GearID    int64     `json:"gear_id" gorm:"uniqueIndex:idx_gear_once_per_session"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Gear *Gear `json:"gear,omitempty" gorm:"foreignKey:GearID"`
}
