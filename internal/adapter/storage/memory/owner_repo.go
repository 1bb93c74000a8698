package memory

import (
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// OwnerRepo implements ports.OwnerRepository.
type OwnerRepo struct {
	store *Store
}

// NewOwnerRepo creates a new OwnerRepo.
func NewOwnerRepo(store *Store) *OwnerRepo {
	return &OwnerRepo{store: store}
}

// Create inserts a new owner. A taken username yields domain.ErrUsernameTaken.
func (r *OwnerRepo) Create(ctx context.Context, o *domain.Owner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[o.Username]; taken {
		return domain.ErrUsernameTaken
	}
	s.owners[o.ID] = *o
	s.byName[o.Username] = o.ID
	return nil
}

// GetByID fetches an owner by UUID.
func (r *OwnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.owners[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// GetByUsername fetches an owner by login name.
func (r *OwnerRepo) GetByUsername(ctx context.Context, username string) (*domain.Owner, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, nil
	}
	o := s.owners[id]
	return &o, nil
}
