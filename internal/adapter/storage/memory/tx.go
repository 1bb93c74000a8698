package memory

import (
	"context"
	"errors"
	"sync"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errNoSQL = errors.New("memory: SQL is not supported")

// Tx is the store's pgx.Tx. Only Commit and Rollback are meaningful; the SQL
// methods exist to satisfy the interface and always fail.
type Tx struct {
	store *Store

	mu      sync.Mutex
	held    map[uuid.UUID]struct{}
	pending map[uuid.UUID]domain.Wallet
	ops     []domain.Operation
	done    bool
}

// lock takes the wallet lock for the lifetime of the transaction.
func (t *Tx) lock(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return pgx.ErrTxClosed
	}
	if _, ok := t.held[id]; ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if err := t.store.acquire(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		t.store.release(id)
		return pgx.ErrTxClosed
	}
	t.held[id] = struct{}{}
	return nil
}

// view returns the wallet as this transaction sees it.
func (t *Tx) view(id uuid.UUID) (domain.Wallet, bool) {
	t.mu.Lock()
	w, ok := t.pending[id]
	t.mu.Unlock()
	if ok {
		return w, true
	}
	return t.store.wallet(id)
}

func (t *Tx) holds(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[id]
	return ok && !t.done
}

func (t *Tx) stage(w domain.Wallet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[w.ID] = w
}

func (t *Tx) appendOp(op domain.Operation) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.ops = append(t.ops, op)
	return nil
}

// Commit publishes staged writes and releases every lock held.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	for id, w := range t.pending {
		s.wallets[id] = w
	}
	for _, op := range t.ops {
		s.ops[op.WalletID] = append(s.ops[op.WalletID], op)
	}
	s.mu.Unlock()

	t.releaseAll()
	return nil
}

// Rollback discards staged writes. After Commit it returns pgx.ErrTxClosed.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.pending = nil
	t.ops = nil
	t.releaseAll()
	return nil
}

func (t *Tx) releaseAll() {
	for id := range t.held {
		t.store.release(id)
	}
	t.held = nil
}

func (t *Tx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, errNoSQL }
func (t *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errNoSQL
}
func (t *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return errBatch{} }
func (t *Tx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *Tx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errNoSQL
}
func (t *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNoSQL
}
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errNoSQL
}
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return errRow{} }
func (t *Tx) Conn() *pgx.Conn                                               { return nil }

type errRow struct{}

func (errRow) Scan(dest ...any) error { return errNoSQL }

type errBatch struct{}

func (errBatch) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, errNoSQL }
func (errBatch) Query() (pgx.Rows, error)         { return nil, errNoSQL }
func (errBatch) QueryRow() pgx.Row                { return errRow{} }
func (errBatch) Close() error                     { return errNoSQL }
