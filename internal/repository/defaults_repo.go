package repository

import (
	"context"

	"recstudio/internal/domain"

	"gorm.io/gorm"
)

type DefaultsRepository struct {
	db *gorm.DB
}

func NewDefaultsRepository(db *gorm.DB) *DefaultsRepository {
	return &DefaultsRepository{db: db}
}

func (r *DefaultsRepository) Get(ctx context.Context, studioID int64) (*domain.StudioDefaults, error) {
	var d domain.StudioDefaults
	tx := r.db.WithContext(ctx).Where("studio_id = ?", studioID).First(&d)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &d, nil
}

func (r *DefaultsRepository) Create(ctx context.Context, d *domain.StudioDefaults) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DefaultsRepository) Update(ctx context.Context, d *domain.StudioDefaults) error {
	return r.db.WithContext(ctx).Save(d).Error
}
