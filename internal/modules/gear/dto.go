package gear

// AddGearRequest attaches one gear item to a session.
type AddGearRequest struct {
	GearID int64  `json:"gear_id" binding:"required"`
	Note   string `json:"note"`
}
