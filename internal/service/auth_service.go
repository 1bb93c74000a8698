package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	ownerRepo ports.OwnerRepository
	hashSvc   ports.HashService
	tokenSvc  ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	ownerRepo ports.OwnerRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		ownerRepo: ownerRepo,
		hashSvc:   hashSvc,
		tokenSvc:  tokenSvc,
	}
}

// Register creates a new owner account.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*domain.Owner, error) {
	existing, err := s.ownerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	passwordHash, err := s.hashSvc.Hash(password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	owner := &domain.Owner{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, apperror.ErrUsernameExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("create owner: %w", err))
	}

	return owner, nil
}

// Login validates credentials and returns a JWT token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	owner, err := s.ownerRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find owner: %w", err))
	}
	if owner == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, owner.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(owner.ID, owner.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}

// Refresh reissues a valid token for its owner. Deleted owners cannot refresh.
func (s *AuthServiceImpl) Refresh(ctx context.Context, token string) (string, time.Time, error) {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return "", time.Time{}, err
	}

	fresh, expiry, err := s.tokenSvc.Generate(claims.OwnerID, claims.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return fresh, expiry, nil
}

// Verify validates the token and checks that its owner still exists.
func (s *AuthServiceImpl) Verify(ctx context.Context, token string) (*ports.TokenClaims, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken()
	}

	owner, err := s.ownerRepo.GetByID(ctx, claims.OwnerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find owner: %w", err))
	}
	if owner == nil {
		return nil, apperror.ErrInvalidToken()
	}

	return &ports.TokenClaims{OwnerID: owner.ID, Username: owner.Username}, nil
}
