package scheduling

import (
	"context"
	"time"

	"recstudio/internal/domain"
	"recstudio/internal/repository"
)

// SessionRepository defines the interface for session storage operations.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetRow(ctx context.Context, id int64) (*repository.SessionRow, error)
	Update(ctx context.Context, s *domain.Session) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	ListByStudio(ctx context.Context, studioID int64, from, to *time.Time) ([]repository.SessionRow, error)
	FindOverlappingRoom(ctx context.Context, studioID, roomID int64, start, end time.Time, excludeID int64) (*repository.OverlapRow, error)
	FindOverlappingEngineer(ctx context.Context, studioID, engineerID int64, start, end time.Time, excludeID int64) (*repository.OverlapRow, error)
}

// RoomRepository defines the room lookups the scheduler needs.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// ClientRepository defines the client lookups the scheduler needs.
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// MemberRepository defines the membership lookups used for tenancy and
// engineer checks. Get returns gorm.ErrRecordNotFound for non-members.
type MemberRepository interface {
	Get(ctx context.Context, studioID, userID int64) (*domain.Member, error)
}

// StudioRepository defines the studio lookups the scheduler needs.
type StudioRepository interface {
	GetTimezone(ctx context.Context, id int64) (string, error)
}

// DefaultsRepository defines storage for per-studio scheduling defaults.
type DefaultsRepository interface {
	Get(ctx context.Context, studioID int64) (*domain.StudioDefaults, error)
	Create(ctx context.Context, d *domain.StudioDefaults) error
	Update(ctx context.Context, d *domain.StudioDefaults) error
}

// ScheduleNotifier pushes schedule-changed events to live board subscribers.
type ScheduleNotifier interface {
	NotifyScheduleChanged(studioID int64, event string, sessionID int64)
}
