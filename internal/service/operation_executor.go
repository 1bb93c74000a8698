package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OperationExecutorImpl implements ports.OperationExecutor.
//
// Every balance change runs in one transaction: lock the wallet row, check
// the rule for the kind, write the new balance, append the operation record,
// commit. Any failure before commit rolls everything back, so a failed
// operation leaves no trace.
type OperationExecutorImpl struct {
	walletRepo ports.WalletRepository
	opRepo     ports.OperationRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
	now        func() time.Time
}

// NewOperationExecutor creates a new OperationExecutorImpl.
func NewOperationExecutor(
	walletRepo ports.WalletRepository,
	opRepo ports.OperationRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *OperationExecutorImpl {
	return &OperationExecutorImpl{
		walletRepo: walletRepo,
		opRepo:     opRepo,
		transactor: transactor,
		log:        log,
		now:        time.Now,
	}
}

// Execute applies one credit or debit to the wallet and returns its new state.
func (e *OperationExecutorImpl) Execute(ctx context.Context, walletID uuid.UUID, kind domain.OperationKind, amount decimal.Decimal) (*domain.Wallet, error) {
	if !kind.IsValid() {
		return nil, apperror.ErrUnknownOperationKind(string(kind))
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, apperror.ErrInvalidAmount(err.Error())
	}

	log := e.log.With().
		Str("wallet_id", walletID.String()).
		Str("operation_type", string(kind)).
		Str("amount", domain.FormatAmount(amount)).
		Logger()

	dbTx, err := e.transactor.Begin(ctx)
	if err != nil {
		return nil, e.fail(ctx, log, fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := e.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, e.fail(ctx, log, fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		log.Warn().Msg("Operation on unknown wallet")
		return nil, apperror.ErrWalletNotFound()
	}

	oldBalance := wallet.Balance
	var newBalance decimal.Decimal

	switch kind {
	case domain.OperationCredit:
		newBalance = oldBalance.Add(amount)
		if err := domain.ValidateBalance(newBalance); err != nil {
			log.Warn().Str("balance", domain.FormatAmount(oldBalance)).Msg("Credit would overflow balance")
			return nil, apperror.ErrInvalidAmount("resulting balance exceeds 18 integer digits")
		}
	case domain.OperationDebit:
		if oldBalance.LessThan(amount) {
			log.Warn().Str("balance", domain.FormatAmount(oldBalance)).Msg("Insufficient balance")
			return nil, apperror.ErrInsufficientBalance(domain.FormatAmount(oldBalance), domain.FormatAmount(amount))
		}
		newBalance = oldBalance.Sub(amount)
	}

	now := e.now().UTC()

	if err := e.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance, now); err != nil {
		return nil, e.fail(ctx, log, fmt.Errorf("update balance: %w", err))
	}

	op := domain.NewOperation(wallet.ID, kind, amount, now)
	if err := e.opRepo.Create(ctx, dbTx, op); err != nil {
		return nil, e.fail(ctx, log, fmt.Errorf("record operation: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, e.fail(ctx, log, fmt.Errorf("commit tx: %w", err))
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now

	log.Info().
		Str("operation_id", op.ID.String()).
		Str("old_balance", domain.FormatAmount(oldBalance)).
		Str("new_balance", domain.FormatAmount(newBalance)).
		Msg("Operation applied")

	return wallet, nil
}

// fail classifies an infrastructure error. A cancelled or expired context
// means the caller gave up, typically while queued on the row lock.
func (e *OperationExecutorImpl) fail(ctx context.Context, log zerolog.Logger, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("Operation aborted waiting for wallet lock")
		return apperror.ErrLockTimeout(err)
	}
	log.Error().Err(err).Msg("Operation failed")
	return apperror.InternalError(err)
}
