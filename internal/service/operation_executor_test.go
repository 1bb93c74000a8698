package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type executorTestDeps struct {
	exec       *OperationExecutorImpl
	walletRepo *mocks.MockWalletRepository
	opRepo     *mocks.MockOperationRepository
	transactor *mocks.MockDBTransactor
}

func setupExecutor(t *testing.T) *executorTestDeps {
	ctrl := gomock.NewController(t)
	d := &executorTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		opRepo:     mocks.NewMockOperationRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
	}
	d.exec = NewOperationExecutor(d.walletRepo, d.opRepo, d.transactor, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing and records how it ended.
type mockTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTx) Rollback(_ context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

func (m *mockTx) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

// decimalEq matches a decimal.Decimal by value rather than representation.
type decimalEq struct{ want decimal.Decimal }

func (m decimalEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalEq) String() string { return "equals decimal " + m.want.String() }

func eqDec(s string) gomock.Matcher { return decimalEq{want: decimal.RequireFromString(s)} }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAppError(t *testing.T, err error, wantCode string) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T: %v", err, err)
	assert.Equal(t, wantCode, appErr.Code)
	return appErr
}

func TestExecutor_Credit_Success(t *testing.T) {
	d := setupExecutor(t)
	ctx := context.Background()
	tx := &mockTx{}
	wallet := &domain.Wallet{ID: uuid.New(), Balance: dec("1000.00"), InitialBalance: dec("1000.00")}
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d.exec.now = func() time.Time { return fixed }

	gomock.InOrder(
		d.transactor.EXPECT().Begin(ctx).Return(tx, nil),
		d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, wallet.ID).Return(wallet, nil),
		d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, eqDec("1500.00"), fixed).Return(nil),
		d.opRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ pgx.Tx, op *domain.Operation) error {
				assert.Equal(t, wallet.ID, op.WalletID)
				assert.Equal(t, domain.OperationCredit, op.Kind)
				assert.True(t, op.Amount.Equal(dec("500")))
				assert.Equal(t, fixed, op.CreatedAt)
				return nil
			}),
	)

	result, err := d.exec.Execute(ctx, wallet.ID, domain.OperationCredit, dec("500"))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", domain.FormatAmount(result.Balance))
	assert.Equal(t, fixed, result.UpdatedAt)
	assert.True(t, tx.committed)
}

func TestExecutor_Debit_Success(t *testing.T) {
	d := setupExecutor(t)
	ctx := context.Background()
	tx := &mockTx{}
	wallet := &domain.Wallet{ID: uuid.New(), Balance: dec("1500.00")}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, wallet.ID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, eqDec("1300.00"), gomock.Any()).Return(nil)
	d.opRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.exec.Execute(ctx, wallet.ID, domain.OperationDebit, dec("200.00"))
	require.NoError(t, err)
	assert.Equal(t, "1300.00", domain.FormatAmount(result.Balance))
}

func TestExecutor_Debit_ExactBalance(t *testing.T) {
	d := setupExecutor(t)
	ctx := context.Background()
	tx := &mockTx{}
	wallet := &domain.Wallet{ID: uuid.New(), Balance: dec("10.00")}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, wallet.ID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, wallet.ID, eqDec("0"), gomock.Any()).Return(nil)
	d.opRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.exec.Execute(ctx, wallet.ID, domain.OperationDebit, dec("10"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", domain.FormatAmount(result.Balance))
}

func TestExecutor_Debit_InsufficientBalance(t *testing.T) {
	d := setupExecutor(t)
	ctx := context.Background()
	tx := &mockTx{}
	wallet := &domain.Wallet{ID: uuid.New(), Balance: dec("1300.00")}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, wallet.ID).Return(wallet, nil)

	result, err := d.exec.Execute(ctx, wallet.ID, domain.OperationDebit, dec("2000"))
	assert.Nil(t, result)
	appErr := assertAppError(t, err, apperror.CodeInsufficientBalance)
	assert.Equal(t, "1300.00", appErr.Details["balance"])
	assert.Equal(t, "2000.00", appErr.Details["requested"])
	assert.Contains(t, appErr.Message, "Current balance: 1300.00, Required: 2000.00")
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestExecutor_WalletNotFound(t *testing.T) {
	d := setupExecutor(t)
	ctx := context.Background()
	tx := &mockTx{}
	id := uuid.New()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).Return(nil, nil)

	_, err := d.exec.Execute(ctx, id, domain.OperationCredit, dec("1"))
	assertAppError(t, err, apperror.CodeWalletNotFound)
	assert.True(t, tx.rolledBack)
}

func TestExecutor_RejectedBeforeTransaction(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.OperationKind
		amount   string
		wantCode string
	}{
		{"unknown kind", domain.OperationKind("TRANSFER"), "10", apperror.CodeUnknownOperationKind},
		{"empty kind", domain.OperationKind(""), "10", apperror.CodeUnknownOperationKind},
		{"zero amount", domain.OperationCredit, "0", apperror.CodeInvalidAmount},
		{"negative amount", domain.OperationDebit, "-10", apperror.CodeInvalidAmount},
		{"three decimals", domain.OperationCredit, "100.123", apperror.CodeInvalidAmount},
		{"too large", domain.OperationCredit, "1000000000000000000", apperror.CodeInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository or transactor call is expected.
			d := setupExecutor(t)
			_, err := d.exec.Execute(context.Background(), uuid.New(), tt.kind, dec(tt.amount))
			assertAppError(t, err, tt.wantCode)
		})
	}
}

func TestExecutor_Credit_BalanceOverflow(t *testing.T) {
	d := setupExecutor(t)
	ctx := context.Background()
	tx := &mockTx{}
	wallet := &domain.Wallet{ID: uuid.New(), Balance: dec("999999999999999999.00")}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, wallet.ID).Return(wallet, nil)

	_, err := d.exec.Execute(ctx, wallet.ID, domain.OperationCredit, dec("1.00"))
	assertAppError(t, err, apperror.CodeInvalidAmount)
	assert.True(t, tx.rolledBack)
}

func TestExecutor_InfrastructureFailures(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		setup func(d *executorTestDeps, tx *mockTx, w *domain.Wallet)
	}{
		{
			name: "begin fails",
			setup: func(d *executorTestDeps, tx *mockTx, w *domain.Wallet) {
				d.transactor.EXPECT().Begin(gomock.Any()).Return(nil, boom)
			},
		},
		{
			name: "lock fails",
			setup: func(d *executorTestDeps, tx *mockTx, w *domain.Wallet) {
				d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				d.walletRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, w.ID).Return(nil, boom)
			},
		},
		{
			name: "update fails",
			setup: func(d *executorTestDeps, tx *mockTx, w *domain.Wallet) {
				d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				d.walletRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, w.ID).Return(w, nil)
				d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), tx, w.ID, gomock.Any(), gomock.Any()).Return(boom)
			},
		},
		{
			name: "record fails",
			setup: func(d *executorTestDeps, tx *mockTx, w *domain.Wallet) {
				d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				d.walletRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, w.ID).Return(w, nil)
				d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), tx, w.ID, gomock.Any(), gomock.Any()).Return(nil)
				d.opRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(boom)
			},
		},
		{
			name: "commit fails",
			setup: func(d *executorTestDeps, tx *mockTx, w *domain.Wallet) {
				tx.commitErr = boom
				d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				d.walletRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, w.ID).Return(w, nil)
				d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), tx, w.ID, gomock.Any(), gomock.Any()).Return(nil)
				d.opRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupExecutor(t)
			tx := &mockTx{}
			w := &domain.Wallet{ID: uuid.New(), Balance: dec("100.00")}
			tt.setup(d, tx, w)

			_, err := d.exec.Execute(context.Background(), w.ID, domain.OperationCredit, dec("1"))
			appErr := assertAppError(t, err, "SYS_001")
			assert.ErrorIs(t, appErr, boom)
			assert.False(t, tx.committed)
		})
	}
}

func TestExecutor_LockTimeout(t *testing.T) {
	d := setupExecutor(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()
	tx := &mockTx{}
	id := uuid.New()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, id).
		Return(nil, fmt.Errorf("get wallet for update by id: %w", context.DeadlineExceeded))

	_, err := d.exec.Execute(ctx, id, domain.OperationDebit, dec("1"))
	appErr := assertAppError(t, err, "SYS_002")
	assert.Equal(t, 503, appErr.HTTPStatus)
	assert.True(t, tx.rolledBack)
}
