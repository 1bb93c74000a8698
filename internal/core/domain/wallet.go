package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a balance-bearing account. Balance is only changed by the
// operation executor and never drops below zero.
type Wallet struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        *uuid.UUID      `json:"owner_id,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewWallet creates a wallet holding initial, optionally bound to owner.
func NewWallet(owner *uuid.UUID, initial decimal.Decimal, now time.Time) *Wallet {
	return &Wallet{
		ID:             uuid.New(),
		OwnerID:        owner,
		Balance:        initial,
		InitialBalance: initial,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// OwnedBy reports whether the wallet belongs to owner.
func (w *Wallet) OwnedBy(owner uuid.UUID) bool {
	return w.OwnerID != nil && *w.OwnerID == owner
}

// Reconciles reports whether the balance equals the initial balance plus
// the net of the given totals.
func (w *Wallet) Reconciles(t OperationTotals) bool {
	return w.InitialBalance.Add(t.Net()).Equal(w.Balance)
}
