package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside the executor's transaction.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	// GetByID is a non-locking read. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	// GetByIDForUpdate locks the wallet row until tx ends, blocking while
	// another transaction holds it. Returns nil, nil when absent.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error
	// GetWithTotals reads the wallet and the aggregate of its history from
	// one snapshot, so no commit can land between the two. Returns
	// nil, nil, nil when the wallet is absent.
	GetWithTotals(ctx context.Context, id uuid.UUID) (*domain.Wallet, *domain.OperationTotals, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error)
}

// OperationRepository defines persistence for the append-only operation history.
type OperationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error
	List(ctx context.Context, params OperationListParams) ([]domain.Operation, int64, error)
}

// OperationListParams holds filter + pagination for a wallet's history.
type OperationListParams struct {
	WalletID uuid.UUID
	Kind     *domain.OperationKind
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip for the requested page.
func (p OperationListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// OwnerRepository defines persistence for wallet owners.
type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
	GetByUsername(ctx context.Context, username string) (*domain.Owner, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
