package gear

import (
	"context"

	"recstudio/internal/domain"
	"recstudio/internal/repository"
)

// GearRepository defines the interface for gear and assignment storage.
type GearRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Gear, error)
	AddAssignment(ctx context.Context, a *domain.GearAssignment) error
	RemoveAssignment(ctx context.Context, sessionID, gearID int64) error
	ListAssignments(ctx context.Context, sessionID int64) ([]repository.AssignmentRow, error)
}

// SessionRepository resolves the session an assignment hangs off.
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
}

// MemberRepository defines the membership lookup used for tenancy checks.
type MemberRepository interface {
	Get(ctx context.Context, studioID, userID int64) (*domain.Member, error)
}
