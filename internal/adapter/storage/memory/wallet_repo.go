package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	store *Store
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(store *Store) *WalletRepo {
	return &WalletRepo{store: store}
}

// Create inserts a new wallet.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[w.ID]; exists {
		return fmt.Errorf("insert wallet: duplicate id %s", w.ID)
	}
	s.wallets[w.ID] = *copyWallet(*w)
	return nil
}

// GetByID returns the last committed state of the wallet.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	w, ok := r.store.wallet(id)
	if !ok {
		return nil, nil
	}
	return copyWallet(w), nil
}

// GetByIDForUpdate locks the wallet until tx ends. It blocks while another
// transaction holds the lock and gives up when ctx is done.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}
	if _, ok := r.store.wallet(id); !ok {
		return nil, nil
	}

	if err := t.lock(ctx, id); err != nil {
		return nil, fmt.Errorf("get wallet for update by id: %w", err)
	}

	w, _ := t.view(id)
	return copyWallet(w), nil
}

// UpdateBalance stages a new balance. The wallet must be locked by tx.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	if !t.holds(walletID) {
		return fmt.Errorf("update wallet balance: wallet %s is not locked by this transaction", walletID)
	}

	w, ok := t.view(walletID)
	if !ok {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	w.Balance = balance
	w.UpdatedAt = updatedAt
	t.stage(w)
	return nil
}

// GetWithTotals reads the committed wallet and its history under one read
// lock. Commit publishes both under the write lock, so the pair is consistent.
func (r *WalletRepo) GetWithTotals(ctx context.Context, id uuid.UUID) (*domain.Wallet, *domain.OperationTotals, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[id]
	if !ok {
		return nil, nil, nil
	}
	return copyWallet(w), s.totals(id), nil
}

// ListByOwner returns the owner's wallets, newest first.
func (r *WalletRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := []domain.Wallet{}
	for _, w := range s.wallets {
		if w.OwnedBy(ownerID) {
			wallets = append(wallets, *copyWallet(w))
		}
	}
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].CreatedAt.After(wallets[j].CreatedAt)
	})
	return wallets, nil
}
