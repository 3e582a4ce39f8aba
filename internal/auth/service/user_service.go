package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/jwt-auth-service/config"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/jwt-auth-service/internal/errors"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/logger"
	"github.com/google/uuid"
)

// Hasher turns secrets into irreversible, salted hashes and checks them.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	hasher       Hasher
	logger       *logger.Logger
	rejectReused bool
	now          func() time.Time
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, hasher Hasher, cfg *config.Config, log *logger.Logger) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       log,
		rejectReused: cfg.JWT.RejectReused,
		now:          time.Now,
	}
}

// Login authenticates an existing account or creates one for an unseen
// email, then issues a token pair and stores the hash of its refresh token.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, autherror.ErrMissingCredentials
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		resp, err := s.register(ctx, input)
		if !errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return resp, err
		}

		// A concurrent first login for the same email won the insert.
		user, err = s.repo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("user %s vanished after duplicate insert", input.Email)
		}
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, autherror.ErrIncorrectPassword
	}

	return s.rotate(ctx, user.ID)
}

// Refresh exchanges a valid refresh token for a new pair. When reuse
// rejection is on, only the most recently issued refresh token is accepted.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, autherror.ErrTokenRequired
	}

	v := s.tokenService.VerifyRefresh(refreshToken)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %v", autherror.ErrTokenInvalid, v.Err)
	}

	user, err := s.repo.GetByID(ctx, v.Claims.UUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrRefreshTokenInvalid
	}

	if s.rejectReused {
		current, err := s.isCurrentRefreshToken(user, refreshToken)
		if err != nil {
			return nil, err
		}
		if !current {
			s.logger.Warn("superseded refresh token presented", "user_id", user.ID)
			return nil, autherror.ErrRefreshTokenInvalid
		}
	}

	return s.rotate(ctx, user.ID)
}

func (s *UserService) isCurrentRefreshToken(user *domain.User, refreshToken string) (bool, error) {
	if user.RefreshTokenHash == "" {
		return false, nil
	}
	ok, err := s.hasher.Verify(refreshToken, user.RefreshTokenHash)
	if err != nil {
		return false, fmt.Errorf("failed to verify refresh token hash: %w", err)
	}
	return ok, nil
}

func (s *UserService) register(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, pair, err := s.newUser(uuid.NewString(), input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID)

	return &dto.TokenResponse{Data: pair}, nil
}

// newUser builds an account row that already carries the hash of its first
// refresh token, so creation is a single write.
func (s *UserService) newUser(id, email, password string) (*domain.User, domain.TokenPair, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	pair, refreshHash, err := s.issue(id)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	now := s.now()
	return &domain.User{
		ID:               id,
		Email:            email,
		PasswordHash:     passwordHash,
		RefreshTokenHash: refreshHash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, pair, nil
}

// rotate issues a new pair for userID and overwrites the stored refresh
// token hash, invalidating whatever was issued before.
func (s *UserService) rotate(ctx context.Context, userID string) (*dto.TokenResponse, error) {
	pair, refreshHash, err := s.issue(userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRefreshToken(ctx, userID, refreshHash); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{Data: pair}, nil
}

func (s *UserService) issue(userID string) (domain.TokenPair, string, error) {
	pair, err := s.tokenService.Issue(domain.Claim{UUID: userID})
	if err != nil {
		return domain.TokenPair{}, "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshHash, err := s.hasher.Hash(pair.RefreshToken)
	if err != nil {
		return domain.TokenPair{}, "", fmt.Errorf("failed to hash refresh token: %w", err)
	}

	return pair, refreshHash, nil
}
