package gear

import (
	"context"
	"errors"
	"fmt"

	"recstudio/internal/domain"
	"recstudio/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	gear     GearRepository
	sessions SessionRepository
	members  MemberRepository
}

func NewService(gear GearRepository, sessions SessionRepository, members MemberRepository) *Service {
	return &Service{gear: gear, sessions: sessions, members: members}
}

// AddAssignment attaches gear to a session. Re-adding the same gear is a
// no-op. The session's full assignment set is re-read afterwards so the
// response can carry current availability warnings.
func (s *Service) AddAssignment(ctx context.Context, sessionID, actorID int64, req AddGearRequest) (*domain.GearAssignment, []Warning, error) {
	if req.GearID <= 0 {
		return nil, nil, ErrValidation
	}

	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireScheduler(ctx, sess.StudioID, actorID); err != nil {
		return nil, nil, err
	}

	g, err := s.gear.GetByID(ctx, req.GearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("load gear: %w", err)
	}
	if g.StudioID != sess.StudioID {
		return nil, nil, ErrNotFound
	}

	a := &domain.GearAssignment{
		SessionID: sessionID,
		GearID:    req.GearID,
		Note:      req.Note,
	}
	if err := s.gear.AddAssignment(ctx, a); err != nil {
		return nil, nil, fmt.Errorf("add gear assignment: %w", err)
	}

	rows, err := s.gear.ListAssignments(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("list gear assignments: %w", err)
	}
	return a, AvailabilityWarnings(rows), nil
}

// RemoveAssignment detaches gear from a session. Removing gear that was
// never attached succeeds quietly.
func (s *Service) RemoveAssignment(ctx context.Context, sessionID, gearID, actorID int64) error {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.requireScheduler(ctx, sess.StudioID, actorID); err != nil {
		return err
	}

	if err := s.gear.RemoveAssignment(ctx, sessionID, gearID); err != nil {
		return fmt.Errorf("remove gear assignment: %w", err)
	}
	return nil
}

// ListAssignments returns the session's gear with display fields joined,
// plus the availability warnings for the set.
func (s *Service) ListAssignments(ctx context.Context, sessionID, actorID int64) ([]repository.AssignmentRow, []Warning, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireMember(ctx, sess.StudioID, actorID); err != nil {
		return nil, nil, err
	}

	rows, err := s.gear.ListAssignments(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("list gear assignments: %w", err)
	}
	return rows, AvailabilityWarnings(rows), nil
}

func (s *Service) loadSession(ctx context.Context, id int64) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *Service) requireMember(ctx context.Context, studioID, actorID int64) error {
	if _, err := s.members.Get(ctx, studioID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load membership: %w", err)
	}
	return nil
}

func (s *Service) requireScheduler(ctx context.Context, studioID, actorID int64) error {
	m, err := s.members.Get(ctx, studioID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load membership: %w", err)
	}
	if !m.Role.CanManageSchedule() {
		return ErrForbidden
	}
	return nil
}
