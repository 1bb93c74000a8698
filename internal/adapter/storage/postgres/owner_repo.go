package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OwnerRepo implements ports.OwnerRepository.
type OwnerRepo struct {
	pool Pool
}

// NewOwnerRepo creates a new OwnerRepo.
func NewOwnerRepo(pool Pool) *OwnerRepo {
	return &OwnerRepo{pool: pool}
}

// Create inserts a new owner. A taken username yields domain.ErrUsernameTaken.
func (r *OwnerRepo) Create(ctx context.Context, o *domain.Owner) error {
	query := `INSERT INTO owners (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, o.ID, o.Username, o.PasswordHash, o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

// GetByID fetches an owner by UUID.
func (r *OwnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	query := `SELECT id, username, password_hash, created_at FROM owners WHERE id = $1`
	return r.getOne(ctx, "get owner by id", query, id)
}

// GetByUsername fetches an owner by login name.
func (r *OwnerRepo) GetByUsername(ctx context.Context, username string) (*domain.Owner, error) {
	query := `SELECT id, username, password_hash, created_at FROM owners WHERE username = $1`
	return r.getOne(ctx, "get owner by username", query, username)
}

func (r *OwnerRepo) getOne(ctx context.Context, op, query string, arg any) (*domain.Owner, error) {
	o := &domain.Owner{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(&o.ID, &o.Username, &o.PasswordHash, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}
