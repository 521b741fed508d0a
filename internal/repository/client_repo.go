package repository

import (
	"context"

	"recstudio/internal/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	tx := r.db.WithContext(ctx).First(&c, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *ClientRepository) ListByStudio(ctx context.Context, studioID int64) ([]domain.Client, error) {
	var clients []domain.Client
	tx := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("name").
		Find(&clients)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}
