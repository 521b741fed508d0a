package repository

import (
	"context"

	"recstudio/internal/domain"

	"gorm.io/gorm"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

func (r *StudioRepository) Create(ctx context.Context, studio *domain.Studio) error {
	return r.db.WithContext(ctx).Create(studio).Error
}

func (r *StudioRepository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	var studio domain.Studio
	tx := r.db.WithContext(ctx).
		Preload("Rooms", "is_active = true").
		First(&studio, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &studio, nil
}

// GetTimezone returns the studio's IANA timezone name, empty when the studio
// has none configured.
func (r *StudioRepository) GetTimezone(ctx context.Context, id int64) (string, error) {
	var tz string
	tx := r.db.WithContext(ctx).
		Table("studios").
		Select("timezone").
		Where("id = ?", id).
		Scan(&tz)
	if tx.Error != nil {
		return "", tx.Error
	}
	return tz, nil
}

func (r *StudioRepository) Update(ctx context.Context, studio *domain.Studio) error {
	return r.db.WithContext(ctx).Save(studio).Error
}
