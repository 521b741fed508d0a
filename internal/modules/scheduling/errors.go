package scheduling

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidStatus     = errors.New("unknown session status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ConflictError names the stored session blocking a requested slot.
type ConflictError struct {
	Resource  string    `json:"resource"` // "room" or "engineer"
	SessionID int64     `json:"session_id"`
	With      string    `json:"with"` // client name on the blocking session
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: session %d (%s) from %s to %s",
		e.Resource, e.SessionID, e.With,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
