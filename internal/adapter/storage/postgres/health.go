package postgres

import (
	"context"
	"errors"
	"fmt"
)

var errSchemaMissing = errors.New("wallets table missing, migrations not applied")

// HealthCheck implements ports.HealthChecker for PostgreSQL. Healthy means
// reachable and migrated.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping checks connectivity and that the ledger schema exists.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.pool.Ping(ctx); err != nil {
		return err
	}

	var present bool
	if err := h.pool.QueryRow(ctx, `SELECT to_regclass('public.wallets') IS NOT NULL`).Scan(&present); err != nil {
		return fmt.Errorf("checking schema: %w", err)
	}
	if !present {
		return errSchemaMissing
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "postgresql"
}
