package domain

import "time"

type StudioRole string

const (
	RoleOwner    StudioRole = "owner"
	RoleAdmin    StudioRole = "admin"
	RoleEngineer StudioRole = "engineer"
)

// Member links a user account to a studio with a role. Owners and admins
// may change the schedule; engineers are bookable on sessions.
type Member struct {
	ID        int64      `json:"id"`
	StudioID  int64      `json:"studio_id" gorm:"uniqueIndex:idx_member_once_per_studio"`
	UserID    int64      `json:"user_id" gorm:"uniqueIndex:idx_member_once_per_studio"`
	Role      StudioRole `json:"role"`
	CreatedAt time.Time  `json:"created_at"`

	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Studio *Studio `json:"studio,omitempty" gorm:"foreignKey:StudioID"`
}

// CanManageSchedule reports whether the role may create, change or delete
// sessions and studio settings.
func (r StudioRole) CanManageSchedule() bool {
	return r == RoleOwner || r == RoleAdmin
}
