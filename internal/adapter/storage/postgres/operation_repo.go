package postgres

import (
	"context"
	"fmt"
	"strings"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OperationRepo implements ports.OperationRepository.
type OperationRepo struct {
	pool Pool
}

// NewOperationRepo creates a new OperationRepo.
func NewOperationRepo(pool Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

// Create appends an operation record within the executor's transaction.
func (r *OperationRepo) Create(ctx context.Context, tx pgx.Tx, op *domain.Operation) error {
	query := `INSERT INTO wallet_operations (id, wallet_id, operation_type, amount, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5)`

	_, err := tx.Exec(ctx, query,
		op.ID, op.WalletID, string(op.Kind), domain.FormatAmount(op.Amount), op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// List returns one page of a wallet's history, newest first, and the total
// number of matching records.
func (r *OperationRepo) List(ctx context.Context, params ports.OperationListParams) ([]domain.Operation, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", argIdx))
	args = append(args, params.WalletID)
	argIdx++

	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("operation_type = $%d", argIdx))
		args = append(args, string(*params.Kind))
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM wallet_operations %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count operations: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT id, wallet_id, operation_type, amount::text, created_at
		FROM wallet_operations %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	ops := []domain.Operation{}
	for rows.Next() {
		var (
			op     domain.Operation
			kind   string
			amount string
		)
		if err := rows.Scan(&op.ID, &op.WalletID, &kind, &amount, &op.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan operation: %w", err)
		}
		op.Kind = domain.OperationKind(kind)
		if op.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, 0, fmt.Errorf("parse operation amount %q: %w", amount, err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate operations: %w", err)
	}
	return ops, total, nil
}

// totalsQuery aggregates a wallet's history per kind.
const totalsQuery = `SELECT
	COALESCE(SUM(amount) FILTER (WHERE operation_type = 'CREDIT'), 0)::text AS credits,
	COALESCE(SUM(amount) FILTER (WHERE operation_type = 'DEBIT'), 0)::text AS debits,
	COUNT(*) FILTER (WHERE operation_type = 'CREDIT') AS credit_count,
	COUNT(*) FILTER (WHERE operation_type = 'DEBIT') AS debit_count
	FROM wallet_operations WHERE wallet_id = $1`

// scanTotals reads one row of totalsQuery.
func scanTotals(row pgx.Row) (*domain.OperationTotals, error) {
	var (
		totals          domain.OperationTotals
		credits, debits string
	)
	if err := row.Scan(&credits, &debits, &totals.CreditCount, &totals.DebitCount); err != nil {
		return nil, err
	}

	var err error
	if totals.Credits, err = decimal.NewFromString(credits); err != nil {
		return nil, fmt.Errorf("parse credit total %q: %w", credits, err)
	}
	if totals.Debits, err = decimal.NewFromString(debits); err != nil {
		return nil, fmt.Errorf("parse debit total %q: %w", debits, err)
	}
	return &totals, nil
}
