package timeline

import (
	"context"
	"time"

	"recstudio/internal/repository"
)

// SessionRepository defines the schedule reads the board needs.
type SessionRepository interface {
	ListWindow(ctx context.Context, studioID int64, endAfter time.Time) ([]repository.SessionRow, error)
}

// StudioRepository defines the studio lookups the board needs.
type StudioRepository interface {
	GetTimezone(ctx context.Context, id int64) (string, error)
}
