package auth

import (
	"context"
	"errors"
	"strings"

	"recstudio/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type tokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

// Service holds the account logic: signup, login, profile reads. Studio
// roles are not part of the account; they live on memberships.
type Service struct {
	users   UserRepository
	members MemberRepository
	jwt     tokenIssuer
}

func NewService(users UserRepository, members MemberRepository, jwt tokenIssuer) *Service {
	return &Service{users: users, members: members, jwt: jwt}
}

// Register creates a staff account and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords read the same to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Me returns the account and its studio memberships.
func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, []domain.Member, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	memberships, err := s.members.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, memberships, nil
}
