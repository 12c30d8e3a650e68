package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/flota-pro/internal/application/parts"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// Ensure TxRunner implements usecase.FleetTxRunner and parts.PartsTxRunner.
var _ usecase.FleetTxRunner = (*TxRunner)(nil)
var _ parts.PartsTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de flota (asignar/terminar asignación)
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	motoRepo repository.MotorcycleRepository,
	assignRepo repository.AssignmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	motoRepo := NewMotorcycleRepository(tx)
	assignRepo := NewAssignmentRepository(tx)

	if err := fn(motoRepo, assignRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunParts inicia una transacción con repos de pedidos y stock (confirmación
// de pedido: pedido + abono al libro en una sola unidad).
func (r *TxRunner) RunParts(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	dealershipRepo repository.DealershipRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	dealershipRepo := NewDealershipRepository(tx)

	if err := fn(orderRepo, dealershipRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
