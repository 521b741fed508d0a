package scheduling

import (
	"context"
	"fmt"
	"time"
)

// CheckRoomConflict returns the first stored session overlapping the
// candidate window [start, end) in the room, or nil when the slot is free.
// excludeID skips one session id (0 means none).
func (s *Service) CheckRoomConflict(ctx context.Context, studioID, roomID int64, start, end time.Time, excludeID int64) (*ConflictError, error) {
	row, err := s.sessions.FindOverlappingRoom(ctx, studioID, roomID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("room overlap query: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return &ConflictError{
		Resource:  "room",
		SessionID: row.SessionID,
		With:      row.ClientName,
		Start:     row.StartTime,
		End:       row.EndTime,
	}, nil
}

// CheckEngineerConflict is the engineer-side counterpart of CheckRoomConflict.
func (s *Service) CheckEngineerConflict(ctx context.Context, studioID, engineerID int64, start, end time.Time, excludeID int64) (*ConflictError, error) {
	row, err := s.sessions.FindOverlappingEngineer(ctx, studioID, engineerID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("engineer overlap query: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return &ConflictError{
		Resource:  "engineer",
		SessionID: row.SessionID,
		With:      row.ClientName,
		Start:     row.StartTime,
		End:       row.EndTime,
	}, nil
}
