package memory

import (
	"context"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OperationRepo implements ports.OperationRepository.
type OperationRepo struct {
	store *Store
}

// NewOperationRepo creates a new OperationRepo.
func NewOperationRepo(store *Store) *OperationRepo {
	return &OperationRepo{store: store}
}

// Create records op; it becomes visible when tx commits.
func (r *OperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	return t.appendOp(*op)
}

// List returns one page of the wallet's history, newest first.
func (r *OperationRepo) List(ctx context.Context, params ports.OperationListParams) ([]domain.Operation, int64, error) {
	s := r.store
	s.mu.RLock()
	history := s.ops[params.WalletID]
	matched := make([]domain.Operation, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		if params.Kind != nil && history[i].Kind != *params.Kind {
			continue
		}
		matched = append(matched, history[i])
	}
	s.mu.RUnlock()

	total := int64(len(matched))
	start := params.Offset()
	if start >= len(matched) {
		return []domain.Operation{}, total, nil
	}
	end := start + params.PageSize
	if params.PageSize <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// totals aggregates the wallet's committed history. s.mu must be held.
func (s *Store) totals(walletID uuid.UUID) *domain.OperationTotals {
	totals := &domain.OperationTotals{Credits: decimal.Zero, Debits: decimal.Zero}
	for _, op := range s.ops[walletID] {
		switch op.Kind {
		case domain.OperationCredit:
			totals.Credits = totals.Credits.Add(op.Amount)
			totals.CreditCount++
		case domain.OperationDebit:
			totals.Debits = totals.Debits.Add(op.Amount)
			totals.DebitCount++
		}
	}
	return totals
}
