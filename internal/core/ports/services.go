package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationExecutor is the only mutation path for wallet balances.
type OperationExecutor interface {
	Execute(ctx context.Context, walletID uuid.UUID, kind domain.OperationKind, amount decimal.Decimal) (*domain.Wallet, error)
}

// WalletService covers wallet creation and the owner-scoped read path.
// A nil owner means ownership is not enforced.
type WalletService interface {
	CreateWallet(ctx context.Context, owner *uuid.UUID, initialBalance decimal.Decimal) (*domain.Wallet, error)
	GetWallet(ctx context.Context, owner *uuid.UUID, walletID uuid.UUID) (*domain.Wallet, error)
	ListWallets(ctx context.Context, owner uuid.UUID) ([]domain.Wallet, error)
	ApplyOperation(ctx context.Context, owner *uuid.UUID, walletID uuid.UUID, kind domain.OperationKind, amount decimal.Decimal) (*domain.Wallet, error)
	ListOperations(ctx context.Context, owner *uuid.UUID, params OperationListParams) ([]domain.Operation, int64, error)
	Summarize(ctx context.Context, owner *uuid.UUID, walletID uuid.UUID) (*WalletSummary, error)
}

// WalletSummary is a reconciliation view of one wallet.
type WalletSummary struct {
	Wallet     *domain.Wallet
	Totals     domain.OperationTotals
	Consistent bool
}

// AuthService defines owner registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.Owner, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
	// Refresh exchanges a still-valid token for a new one with a fresh expiry.
	Refresh(ctx context.Context, token string) (string, time.Time, error)
	// Verify reports whose token it is. The owner must still exist.
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(ownerID uuid.UUID, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	OwnerID  uuid.UUID
	Username string
}

// AuditService records API access events.
type AuditService interface {
	Record(ctx context.Context, event *domain.AccessEvent)
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}
