package repository

import (
	"context"
	"time"

	"recstudio/internal/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	StudioID   int64     `gorm:"column:studio_id"`
	RoomID     int64     `gorm:"column:room_id"`
	ClientID   int64     `gorm:"column:client_id"`
	EngineerID *int64    `gorm:"column:engineer_id"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	Status     string    `gorm:"column:status"`
	Notes      *string   `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string { return "sessions" }

func toDomainSession(m sessionModel) *domain.Session {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Session{
		ID:         m.ID,
		StudioID:   m.StudioID,
		RoomID:     m.RoomID,
		ClientID:   m.ClientID,
		EngineerID: m.EngineerID,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Status:     domain.SessionStatus(m.Status),
		Notes:      notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toSessionModel(s *domain.Session) sessionModel {
	var notes *string
	if s.Notes != "" {
		v := s.Notes
		notes = &v
	}

	return sessionModel{
		ID:         s.ID,
		StudioID:   s.StudioID,
		RoomID:     s.RoomID,
		ClientID:   s.ClientID,
		EngineerID: s.EngineerID,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     string(s.Status),
		Notes:      notes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// SessionRow is a session joined with the display names the list and
// schedule endpoints render.
type SessionRow struct {
	ID           int64     `json:"id"`
	StudioID     int64     `json:"studio_id"`
	RoomID       int64     `json:"room_id"`
	ClientID     int64     `json:"client_id"`
	EngineerID   *int64    `json:"engineer_id,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	ClientName   string    `json:"client_name"`
	RoomName     string    `json:"room_name"`
	EngineerName string    `json:"engineer_name,omitempty"`
}

// OverlapRow describes the first stored session blocking a candidate window.
type OverlapRow struct {
	SessionID  int64     `json:"session_id"`
	ClientName string    `json:"client_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	m := toSessionModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSession(m)
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	var m sessionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSession(m), nil
}

const sessionRowSelect = `
SELECT s.id, s.studio_id, s.room_id, s.client_id, s.engineer_id,
       s.start_time, s.end_time, s.status, s.notes,
       COALESCE(c.name, '') AS client_name,
       COALESCE(r.name, '') AS room_name,
       COALESCE(u.name, '') AS engineer_name
FROM sessions s
LEFT JOIN clients c ON c.id = s.client_id
LEFT JOIN rooms r ON r.id = s.room_id
LEFT JOIN users u ON u.id = s.engineer_id
`

func (r *SessionRepository) GetRow(ctx context.Context, id int64) (*SessionRow, error) {
	var rows []SessionRow
	q := sessionRowSelect + `WHERE s.id = ?`
	tx := r.db.WithContext(ctx).Raw(q, id).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// ListByStudio returns the studio's sessions ordered by start time. The
// bounds, when given, are half-open instants: start_time in [from, to).
func (r *SessionRepository) ListByStudio(ctx context.Context, studioID int64, from, to *time.Time) ([]SessionRow, error) {
	q := sessionRowSelect + `WHERE s.studio_id = ?`
	args := []any{studioID}

	if from != nil {
		q += ` AND s.start_time >= ?`
		args = append(args, *from)
	}
	if to != nil {
		q += ` AND s.start_time < ?`
		args = append(args, *to)
	}
	q += ` ORDER BY s.start_time`

	var rows []SessionRow
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// ListWindow returns non-cancelled sessions still relevant for the schedule
// view: anything ending at or after the window start, future included.
func (r *SessionRepository) ListWindow(ctx context.Context, studioID int64, endAfter time.Time) ([]SessionRow, error) {
	q := sessionRowSelect + `
WHERE s.studio_id = ?
  AND s.status <> 'cancelled'
  AND s.end_time >= ?
ORDER BY s.start_time`

	var rows []SessionRow
	tx := r.db.WithContext(ctx).Raw(q, studioID, endAfter).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// FindOverlappingRoom returns the earliest non-cancelled session in the room
// crossing the half-open window [start, end), or nil. Sessions that merely
// touch an endpoint do not cross. excludeID skips the session being moved;
// pass 0 on create.
func (r *SessionRepository) FindOverlappingRoom(ctx context.Context, studioID, roomID int64, start, end time.Time, excludeID int64) (*OverlapRow, error) {
	q := `
SELECT s.id AS session_id, COALESCE(c.name, '') AS client_name, s.start_time, s.end_time
FROM sessions s
LEFT JOIN clients c ON c.id = s.client_id
WHERE s.studio_id = ?
  AND s.room_id = ?
  AND s.id <> ?
  AND s.status <> 'cancelled'
  AND s.start_time < ?
  AND s.end_time > ?
ORDER BY s.start_time
LIMIT 1
`
	var rows []OverlapRow
	tx := r.db.WithContext(ctx).Raw(q, studioID, roomID, excludeID, end, start).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindOverlappingEngineer is FindOverlappingRoom for the engineer dimension.
func (r *SessionRepository) FindOverlappingEngineer(ctx context.Context, studioID, engineerID int64, start, end time.Time, excludeID int64) (*OverlapRow, error) {
	q := `
SELECT s.id AS session_id, COALESCE(c.name, '') AS client_name, s.start_time, s.end_time
FROM sessions s
LEFT JOIN clients c ON c.id = s.client_id
WHERE s.studio_id = ?
  AND s.engineer_id = ?
  AND s.id <> ?
  AND s.status <> 'cancelled'
  AND s.start_time < ?
  AND s.end_time > ?
ORDER BY s.start_time
LIMIT 1
`
	var rows []OverlapRow
	tx := r.db.WithContext(ctx).Raw(q, studioID, engineerID, excludeID, end, start).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	m := toSessionModel(s)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSession(m)
	return nil
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&sessionModel{}, id).Error
}
