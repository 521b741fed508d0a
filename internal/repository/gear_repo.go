package repository

import (
	"context"

	"recstudio/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GearRepository struct {
	db *gorm.DB
}

func NewGearRepository(db *gorm.DB) *GearRepository {
	return &GearRepository{db: db}
}

func (r *GearRepository) Create(ctx context.Context, g *domain.Gear) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GearRepository) GetByID(ctx context.Context, id int64) (*domain.Gear, error) {
	var g domain.Gear
	tx := r.db.WithContext(ctx).First(&g, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &g, nil
}

func (r *GearRepository) ListByStudio(ctx context.Context, studioID int64) ([]domain.Gear, error) {
	var gear []domain.Gear
	tx := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("name").
		Find(&gear)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return gear, nil
}

func (r *GearRepository) Update(ctx context.Context, g *domain.Gear) error {
	return r.db.WithContext(ctx).Save(g).Error
}

// AssignmentRow is an assignment joined with the gear fields the session
// gear list renders and the availability check needs.
type AssignmentRow struct {
	ID        int64  `json:"id"`
	SessionID int64  `json:"session_id"`
	GearID    int64  `json:"gear_id"`
	Note      string `json:"note,omitempty"`
	GearName  string `json:"gear_name"`
	Brand     string `json:"brand,omitempty"`
	Model     string `json:"model,omitempty"`
	Category  string `json:"category,omitempty"`
	Quantity  int    `json:"quantity"`
}

// AddAssignment attaches gear to a session. Repeating an attach is a no-op:
// the existing row is loaded back instead of a duplicate being written.
func (r *GearRepository) AddAssignment(ctx context.Context, a *domain.GearAssignment) error {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return r.db.WithContext(ctx).
			Where("session_id = ? AND gear_id = ?", a.SessionID, a.GearID).
			First(a).Error
	}
	return nil
}

// RemoveAssignment detaches gear from a session. Removing an absent
// assignment is not an error.
func (r *GearRepository) RemoveAssignment(ctx context.Context, sessionID, gearID int64) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND gear_id = ?", sessionID, gearID).
		Delete(&domain.GearAssignment{}).Error
}

func (r *GearRepository) ListAssignments(ctx context.Context, sessionID int64) ([]AssignmentRow, error) {
	q := `
SELECT a.id, a.session_id, a.gear_id, COALESCE(a.note, '') AS note,
       g.name AS gear_name, g.brand, g.model, g.category, g.quantity
FROM gear_assignments a
JOIN gears g ON g.id = a.gear_id
WHERE a.session_id = ?
ORDER BY g.name
`
	var rows []AssignmentRow
	tx := r.db.WithContext(ctx).Raw(q, sessionID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
