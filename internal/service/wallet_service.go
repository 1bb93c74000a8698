package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	opRepo     ports.OperationRepository
	executor   ports.OperationExecutor
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	opRepo ports.OperationRepository,
	executor ports.OperationExecutor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		opRepo:     opRepo,
		executor:   executor,
		log:        log,
	}
}

// CreateWallet opens a wallet holding initialBalance.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, owner *uuid.UUID, initialBalance decimal.Decimal) (*domain.Wallet, error) {
	if err := domain.ValidateBalance(initialBalance); err != nil {
		return nil, apperror.ErrInvalidAmount(err.Error())
	}

	wallet := domain.NewWallet(owner, initialBalance, time.Now().UTC())
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	event := s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("initial_balance", domain.FormatAmount(initialBalance))
	if owner != nil {
		event = event.Str("owner_id", owner.String())
	}
	event.Msg("Wallet created")

	return wallet, nil
}

// GetWallet returns the wallet, or WalletNotFound when it is absent or, with
// a non-nil owner, belongs to someone else.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, owner *uuid.UUID, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if owner != nil && !wallet.OwnedBy(*owner) {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// ListWallets returns every wallet of owner.
func (s *WalletServiceImpl) ListWallets(ctx context.Context, owner uuid.UUID) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// ApplyOperation checks ownership, then hands the operation to the executor.
func (s *WalletServiceImpl) ApplyOperation(ctx context.Context, owner *uuid.UUID, walletID uuid.UUID, kind domain.OperationKind, amount decimal.Decimal) (*domain.Wallet, error) {
	if owner != nil {
		if _, err := s.GetWallet(ctx, owner, walletID); err != nil {
			return nil, err
		}
	}
	return s.executor.Execute(ctx, walletID, kind, amount)
}

// ListOperations returns one page of the wallet's history, newest first.
func (s *WalletServiceImpl) ListOperations(ctx context.Context, owner *uuid.UUID, params ports.OperationListParams) ([]domain.Operation, int64, error) {
	if _, err := s.GetWallet(ctx, owner, params.WalletID); err != nil {
		return nil, 0, err
	}
	if params.Kind != nil && !params.Kind.IsValid() {
		return nil, 0, apperror.ErrUnknownOperationKind(string(*params.Kind))
	}

	ops, total, err := s.opRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list operations: %w", err))
	}
	return ops, total, nil
}

// Summarize reconciles the wallet's balance against its history. Both are
// read from one snapshot, so a commit in flight never shows up as drift.
func (s *WalletServiceImpl) Summarize(ctx context.Context, owner *uuid.UUID, walletID uuid.UUID) (*ports.WalletSummary, error) {
	wallet, totals, err := s.walletRepo.GetWithTotals(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("wallet snapshot: %w", err))
	}
	if wallet == nil || (owner != nil && !wallet.OwnedBy(*owner)) {
		return nil, apperror.ErrWalletNotFound()
	}

	consistent := wallet.Reconciles(*totals)
	if !consistent {
		s.log.Error().
			Str("wallet_id", walletID.String()).
			Str("balance", domain.FormatAmount(wallet.Balance)).
			Str("initial_balance", domain.FormatAmount(wallet.InitialBalance)).
			Str("net", domain.FormatAmount(totals.Net())).
			Msg("Wallet balance does not reconcile with history")
	}

	return &ports.WalletSummary{
		Wallet:     wallet,
		Totals:     *totals,
		Consistent: consistent,
	}, nil
}
