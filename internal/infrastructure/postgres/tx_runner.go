package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Consumibles-api/internal/application/depletion"
	"github.com/jhoicas/Consumibles-api/internal/application/usecase"
	"github.com/jhoicas/Consumibles-api/internal/domain/repository"
)

// Ensure TxRunner implements depletion.TxRunner and usecase.RegistrationTxRunner.
var _ depletion.TxRunner = (*TxRunner)(nil)
var _ usecase.RegistrationTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	eventRepo repository.UsageEventRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	eventRepo := NewUsageEventRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(eventRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration inicia una transacción con repos de tienda y usuario (alta de tienda + admin).
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	storeRepo := NewStoreRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(storeRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
