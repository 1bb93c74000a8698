// Package memory is a process-local ledger store. It follows the same
// locking contract as the postgres adapter: a wallet read with
// GetByIDForUpdate stays locked until the transaction commits or rolls back,
// and writes made inside a transaction become visible only on Commit.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrForeignTx is returned when a repository is handed a transaction that
// was not started by this store.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

// Store holds wallets, their histories and owners.
type Store struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]domain.Wallet
	ops     map[uuid.UUID][]domain.Operation
	owners  map[uuid.UUID]domain.Owner
	byName  map[string]uuid.UUID
	locks   map[uuid.UUID]chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets: make(map[uuid.UUID]domain.Wallet),
		ops:     make(map[uuid.UUID][]domain.Operation),
		owners:  make(map[uuid.UUID]domain.Owner),
		byName:  make(map[string]uuid.UUID),
		locks:   make(map[uuid.UUID]chan struct{}),
	}
}

// Begin implements ports.DBTransactor.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{
		store:   s,
		held:    make(map[uuid.UUID]struct{}),
		pending: make(map[uuid.UUID]domain.Wallet),
	}, nil
}

// lockFor returns the wallet's lock, creating it on first use.
func (s *Store) lockFor(id uuid.UUID) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[id] = l
	}
	return l
}

// acquire blocks until the wallet lock is free or ctx is done.
func (s *Store) acquire(ctx context.Context, id uuid.UUID) error {
	l := s.lockFor(id)
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release(id uuid.UUID) {
	<-s.lockFor(id)
}

func (s *Store) wallet(id uuid.UUID) (domain.Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	return w, ok
}

func asTx(tx pgx.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, ErrForeignTx
	}
	return t, nil
}

// copyWallet detaches the owner pointer from the stored value.
func copyWallet(w domain.Wallet) *domain.Wallet {
	if w.OwnerID != nil {
		id := *w.OwnerID
		w.OwnerID = &id
	}
	return &w
}
