package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// NUMERIC columns are read back as text so that shopspring/decimal parses
// the exact stored value.
const walletColumns = `id, owner_id, balance::text, initial_balance::text, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_id, balance, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.OwnerID, domain.FormatAmount(w.Balance), domain.FormatAmount(w.InitialBalance),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a wallet with a row lock held until tx ends.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update by id: %w", err)
	}
	return w, nil
}

// UpdateBalance writes a new balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE wallets SET balance = $1::numeric, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, domain.FormatAmount(balance), updatedAt, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// snapshotTx is the transaction GetWithTotals reads in. Under REPEATABLE READ
// both statements see the same snapshot.
var snapshotTx = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// GetWithTotals reads the wallet and its history totals in one read-only
// REPEATABLE READ transaction.
func (r *WalletRepo) GetWithTotals(ctx context.Context, id uuid.UUID) (*domain.Wallet, *domain.OperationTotals, error) {
	tx, err := r.pool.BeginTx(ctx, snapshotTx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin snapshot: %w", err)
	}
	// Nothing is written, so the transaction always ends with a rollback.
	defer tx.Rollback(ctx) //nolint:errcheck

	w, err := scanWallet(tx.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get wallet by id: %w", err)
	}

	totals, err := scanTotals(tx.QueryRow(ctx, totalsQuery, id))
	if err != nil {
		return nil, nil, fmt.Errorf("get operation totals: %w", err)
	}
	return w, totals, nil
}

// ListByOwner returns the owner's wallets, newest first.
func (r *WalletRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallets: %w", err)
	}
	return wallets, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		w                domain.Wallet
		balance, initial string
	)
	if err := row.Scan(&w.ID, &w.OwnerID, &balance, &initial, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if w.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	if w.InitialBalance, err = decimal.NewFromString(initial); err != nil {
		return nil, fmt.Errorf("parse initial balance %q: %w", initial, err)
	}
	return &w, nil
}
