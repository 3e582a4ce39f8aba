package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/domain UserRepository

import "context"

// UserRepository is the persistence contract of the auth service.
// Lookups return a nil user and a nil error when nothing matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string) error
}
