package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta las operaciones del libro dentro de una transacción
// PostgreSQL: Commit si fn retorna nil, Rollback en cualquier otro camino de
// salida. Es la garantía de que logs y posición no se desincronizan.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	shipmentRepo repository.ShipmentRepository,
	positionRepo repository.PositionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	receiptRepo := NewReceiptRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)
	positionRepo := NewPositionRepository(tx)

	if err := fn(receiptRepo, shipmentRepo, positionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
