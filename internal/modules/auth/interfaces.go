package auth

import (
	"context"

	"recstudio/internal/domain"
)

// UserRepository defines the interface for account storage operations.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// MemberRepository lists the studios an account belongs to.
type MemberRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Member, error)
}
