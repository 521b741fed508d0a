package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recstudio/internal/cache"
	"recstudio/internal/config"
	"recstudio/internal/domain"
	"recstudio/internal/metrics"
	"recstudio/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	sessions SessionRepository
	rooms    RoomRepository
	clients  ClientRepository
	members  MemberRepository
	studios  StudioRepository
	defaults DefaultsRepository
	cache    cache.DefaultsCache
	notifs   ScheduleNotifier
	fallback config.SchedulingConfig
}

func NewService(
	sessions SessionRepository,
	rooms RoomRepository,
	clients ClientRepository,
	members MemberRepository,
	studios StudioRepository,
	defaults DefaultsRepository,
	defaultsCache cache.DefaultsCache,
	notifs ScheduleNotifier,
	fallback config.SchedulingConfig,
) *Service {
	return &Service{
		sessions: sessions,
		rooms:    rooms,
		clients:  clients,
		members:  members,
		studios:  studios,
		defaults: defaults,
		cache:    defaultsCache,
		notifs:   notifs,
		fallback: fallback,
	}
}

// CreateSession books a slot. Times arrive as a studio-local date plus clock
// times; the end rolls to the next day when it is not after the start
// (overnight run), and a missing end derives from the studio defaults.
func (s *Service) CreateSession(ctx context.Context, studioID int64, req CreateSessionRequest) (*domain.Session, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	startClock, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	if req.RoomID <= 0 || req.ClientID <= 0 {
		return nil, ErrValidation
	}
	if req.EngineerID != nil && *req.EngineerID <= 0 {
		return nil, ErrValidation
	}

	loc, err := s.locationFor(ctx, studioID)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, loc)

	var end time.Time
	if req.EndTime != "" {
		endClock, err := time.Parse("15:04", req.EndTime)
		if err != nil {
			return nil, ErrValidation
		}
		end = time.Date(day.Year(), day.Month(), day.Day(),
			endClock.Hour(), endClock.Minute(), 0, 0, loc)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1) // overnight run
		}
	} else {
		d, err := s.GetDefaults(ctx, studioID)
		if err != nil {
			return nil, err
		}
		end = start.Add(time.Duration(d.SessionHours) * time.Hour)
	}

	if err := s.checkRoomTenancy(ctx, studioID, req.RoomID); err != nil {
		return nil, err
	}
	if err := s.checkClientTenancy(ctx, studioID, req.ClientID); err != nil {
		return nil, err
	}
	if req.EngineerID != nil {
		if err := s.checkEngineerMembership(ctx, studioID, *req.EngineerID); err != nil {
			return nil, err
		}
	}

	if conflict, err := s.CheckRoomConflict(ctx, studioID, req.RoomID, start, end, 0); err != nil {
		return nil, err
	} else if conflict != nil {
		metrics.IncConflictRejected(conflict.Resource)
		return nil, conflict
	}
	if req.EngineerID != nil {
		if conflict, err := s.CheckEngineerConflict(ctx, studioID, *req.EngineerID, start, end, 0); err != nil {
			return nil, err
		} else if conflict != nil {
			metrics.IncConflictRejected(conflict.Resource)
			return nil, conflict
		}
	}

	sess := &domain.Session{
		StudioID:   studioID,
		RoomID:     req.RoomID,
		ClientID:   req.ClientID,
		EngineerID: req.EngineerID,
		StartTime:  start.UTC(),
		EndTime:    end.UTC(),
		Status:     domain.SessionScheduled,
		Notes:      req.Notes,
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		if conflict := s.mapExclusion(ctx, err, studioID, sess, 0); conflict != nil {
			metrics.IncConflictRejected(conflict.Resource)
			return nil, conflict
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.IncSessionCreated()
	if s.notifs != nil {
		s.notifs.NotifyScheduleChanged(studioID, "session_created", sess.ID)
	}
	return sess, nil
}

// GetSession returns one session with its display names joined. Reading is
// open to every member of the owning studio, not just schedulers.
func (s *Service) GetSession(ctx context.Context, sessionID, actorID int64) (*repository.SessionRow, error) {
	row, err := s.sessions.GetRow(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := s.requireMember(ctx, row.StudioID, actorID); err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateSession edits a session with absolute timestamps. Only supplied
// fields change; tenancy and conflicts are re-checked for the fields that
// did, always excluding the session's own row.
func (s *Service) UpdateSession(ctx context.Context, sessionID, actorID int64, req UpdateSessionRequest) (*domain.Session, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireScheduler(ctx, sess.StudioID, actorID); err != nil {
		return nil, err
	}

	if req.RoomID != nil && *req.RoomID <= 0 {
		return nil, ErrValidation
	}
	if req.ClientID != nil && *req.ClientID <= 0 {
		return nil, ErrValidation
	}
	if req.EngineerID != nil && *req.EngineerID < 0 {
		return nil, ErrValidation
	}

	timesChanged := false
	if req.StartTime != nil {
		sess.StartTime = req.StartTime.UTC()
		timesChanged = true
	}
	if req.EndTime != nil {
		sess.EndTime = req.EndTime.UTC()
		timesChanged = true
	}
	// absolute times here: no overnight roll, the pair must already be ordered
	if !sess.EndTime.After(sess.StartTime) {
		return nil, ErrValidation
	}

	roomChanged := false
	if req.RoomID != nil && *req.RoomID != sess.RoomID {
		if err := s.checkRoomTenancy(ctx, sess.StudioID, *req.RoomID); err != nil {
			return nil, err
		}
		sess.RoomID = *req.RoomID
		roomChanged = true
	}

	if req.ClientID != nil && *req.ClientID != sess.ClientID {
		if err := s.checkClientTenancy(ctx, sess.StudioID, *req.ClientID); err != nil {
			return nil, err
		}
		sess.ClientID = *req.ClientID
	}

	engineerChanged := false
	if req.EngineerID != nil {
		switch {
		case *req.EngineerID == 0:
			if sess.EngineerID != nil {
				sess.EngineerID = nil
				engineerChanged = true
			}
		case sess.EngineerID == nil || *sess.EngineerID != *req.EngineerID:
			if err := s.checkEngineerMembership(ctx, sess.StudioID, *req.EngineerID); err != nil {
				return nil, err
			}
			id := *req.EngineerID
			sess.EngineerID = &id
			engineerChanged = true
		}
	}

	if req.Status != nil {
		next, ok := domain.NormalizeSessionStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		// echoing the current status back is not a transition
		if next != sess.Status {
			if !domain.CanTransition(sess.Status, next) {
				return nil, ErrInvalidTransition
			}
			sess.Status = next
		}
	}

	if req.Notes != nil {
		sess.Notes = *req.Notes
	}

	if timesChanged || roomChanged {
		if conflict, err := s.CheckRoomConflict(ctx, sess.StudioID, sess.RoomID, sess.StartTime, sess.EndTime, sess.ID); err != nil {
			return nil, err
		} else if conflict != nil {
			metrics.IncConflictRejected(conflict.Resource)
			return nil, conflict
		}
	}
	if sess.EngineerID != nil && (timesChanged || engineerChanged) {
		if conflict, err := s.CheckEngineerConflict(ctx, sess.StudioID, *sess.EngineerID, sess.StartTime, sess.EndTime, sess.ID); err != nil {
			return nil, err
		} else if conflict != nil {
			metrics.IncConflictRejected(conflict.Resource)
			return nil, conflict
		}
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		if conflict := s.mapExclusion(ctx, err, sess.StudioID, sess, sess.ID); conflict != nil {
			metrics.IncConflictRejected(conflict.Resource)
			return nil, conflict
		}
		return nil, fmt.Errorf("update session: %w", err)
	}

	if s.notifs != nil {
		s.notifs.NotifyScheduleChanged(sess.StudioID, "session_updated", sess.ID)
	}
	return sess, nil
}

// UpdateSessionStatus normalizes the requested status (the "finished" alias
// maps to completed) and applies it when the transition is allowed.
func (s *Service) UpdateSessionStatus(ctx context.Context, sessionID, actorID int64, raw string) (*domain.Session, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireScheduler(ctx, sess.StudioID, actorID); err != nil {
		return nil, err
	}

	next, ok := domain.NormalizeSessionStatus(raw)
	if !ok {
		return nil, ErrInvalidStatus
	}
	if !domain.CanTransition(sess.Status, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.sessions.UpdateStatus(ctx, sessionID, string(next)); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	sess.Status = next

	if s.notifs != nil {
		s.notifs.NotifyScheduleChanged(sess.StudioID, "status_changed", sess.ID)
	}
	return sess, nil
}

// DeleteSession removes the row outright; cancellation is the recoverable path.
func (s *Service) DeleteSession(ctx context.Context, sessionID, actorID int64) error {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.requireScheduler(ctx, sess.StudioID, actorID); err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if s.notifs != nil {
		s.notifs.NotifyScheduleChanged(sess.StudioID, "session_deleted", sess.ID)
	}
	return nil
}

// ListSessions returns the studio's sessions with display names joined,
// optionally bounded by inclusive studio-local day keys.
func (s *Service) ListSessions(ctx context.Context, studioID int64, fromKey, toKey string) ([]repository.SessionRow, error) {
	loc, err := s.locationFor(ctx, studioID)
	if err != nil {
		return nil, err
	}

	var from, to *time.Time
	if fromKey != "" {
		day, err := time.ParseInLocation("2006-01-02", fromKey, loc)
		if err != nil {
			return nil, ErrValidation
		}
		t := day.UTC()
		from = &t
	}
	if toKey != "" {
		day, err := time.ParseInLocation("2006-01-02", toKey, loc)
		if err != nil {
			return nil, ErrValidation
		}
		t := day.AddDate(0, 0, 1).UTC() // inclusive key, exclusive bound
		to = &t
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, ErrValidation
	}

	rows, err := s.sessions.ListByStudio(ctx, studioID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return rows, nil
}

// loadSession fetches a session, folding the gorm miss into ErrNotFound.
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

// requireMember confirms the actor belongs to the studio at all. Non-members
// get not-found so cross-tenant ids stay indistinguishable.
func (s *Service) requireMember(ctx context.Context, studioID, actorID int64) error {
	if _, err := s.members.Get(ctx, studioID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load membership: %w", err)
	}
	return nil
}

// requireScheduler confirms the actor may mutate the studio's schedule.
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

// locationFor resolves the studio's IANA timezone, falling back to the
// server zone when unset or unknown.
func (s *Service) locationFor(ctx context.Context, studioID int64) (*time.Location, error) {
	tz, err := s.studios.GetTimezone(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load studio timezone: %w", err)
	}
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local, nil
	}
	return loc, nil
}

func (s *Service) checkRoomTenancy(ctx context.Context, studioID, roomID int64) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load room: %w", err)
	}
	if room.StudioID != studioID {
		return ErrNotFound
	}
	return nil
}

func (s *Service) checkClientTenancy(ctx context.Context, studioID, clientID int64) error {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load client: %w", err)
	}
	if client.StudioID != studioID {
		return ErrNotFound
	}
	return nil
}

// checkEngineerMembership accepts any member of the studio as a bookable
// engineer; the role only gates schedule mutation, not assignment.
func (s *Service) checkEngineerMembership(ctx context.Context, studioID, userID int64) error {
	if _, err := s.members.Get(ctx, studioID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load engineer membership: %w", err)
	}
	return nil
}

// mapExclusion translates a Postgres exclusion violation raised by the
// storage-level overlap guard into the same conflict shape the pre-flight
// check returns. The blocking row is re-read best-effort to fill in details.
func (s *Service) mapExclusion(ctx context.Context, err error, studioID int64, sess *domain.Session, excludeID int64) *ConflictError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23P01" {
		return nil
	}

	conflict := &ConflictError{
		Resource: "room",
		Start:    sess.StartTime,
		End:      sess.EndTime,
	}
	if pgErr.ConstraintName == "sessions_engineer_no_overlap" {
		conflict.Resource = "engineer"
	}

	var row *repository.OverlapRow
	if conflict.Resource == "engineer" && sess.EngineerID != nil {
		row, _ = s.sessions.FindOverlappingEngineer(ctx, studioID, *sess.EngineerID, sess.StartTime, sess.EndTime, excludeID)
	} else {
		row, _ = s.sessions.FindOverlappingRoom(ctx, studioID, sess.RoomID, sess.StartTime, sess.EndTime, excludeID)
	}
	if row != nil {
		conflict.SessionID = row.SessionID
		conflict.With = row.ClientName
		conflict.Start = row.StartTime
		conflict.End = row.EndTime
	}
	return conflict
}
