package repository

import (
	"context"

	"recstudio/internal/domain"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Get returns the membership linking a user to a studio, if any.
func (r *MemberRepository) Get(ctx context.Context, studioID, userID int64) (*domain.Member, error) {
	var m domain.Member
	tx := r.db.WithContext(ctx).
		Where("studio_id = ? AND user_id = ?", studioID, userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

// ListByUser returns the memberships an account holds, studio included.
func (r *MemberRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Member, error) {
	var members []domain.Member
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Studio").
		Find(&members)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return members, nil
}

func (r *MemberRepository) ListByStudio(ctx context.Context, studioID int64) ([]domain.Member, error) {
	var members []domain.Member
	tx := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Preload("User").
		Find(&members)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return members, nil
}
