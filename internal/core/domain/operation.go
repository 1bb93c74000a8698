package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationKind is the direction of a balance change.
type OperationKind string

const (
	OperationCredit OperationKind = "CREDIT"
	OperationDebit  OperationKind = "DEBIT"
)

// Legacy names accepted from clients.
const (
	aliasDeposit  = "DEPOSIT"
	aliasWithdraw = "WITHDRAW"
)

// IsValid reports whether k is one of the known kinds.
func (k OperationKind) IsValid() bool {
	return k == OperationCredit || k == OperationDebit
}

// ParseOperationKind normalizes client input. DEPOSIT and WITHDRAW map to
// CREDIT and DEBIT; unknown values are returned upper-cased and fail IsValid.
func ParseOperationKind(raw string) OperationKind {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case aliasDeposit:
		return OperationCredit
	case aliasWithdraw:
		return OperationDebit
	}
	return OperationKind(s)
}

// Operation is an immutable record of one applied balance change.
type Operation struct {
	ID        uuid.UUID       `json:"id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	Kind      OperationKind   `json:"operation_type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewOperation builds a record for kind/amount applied to walletID at now.
func NewOperation(walletID uuid.UUID, kind OperationKind, amount decimal.Decimal, now time.Time) *Operation {
	return &Operation{
		ID:        uuid.New(),
		WalletID:  walletID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: now,
	}
}

// OperationTotals aggregates a wallet's history.
type OperationTotals struct {
	Credits     decimal.Decimal
	Debits      decimal.Decimal
	CreditCount int64
	DebitCount  int64
}

// Count is the number of recorded operations.
func (t OperationTotals) Count() int64 {
	return t.CreditCount + t.DebitCount
}

// Net is Σcredits − Σdebits.
func (t OperationTotals) Net() decimal.Decimal {
	return t.Credits.Sub(t.Debits)
}
