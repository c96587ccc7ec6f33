package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La disponibilidad de stock se protege con el UPDATE condicional de StockLevelRepo.Adjust.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// NewTxRepos construye todos los repositorios sobre el mismo Querier.
func NewTxRepos(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Items:          NewInventoryItemRepository(q),
		Warehouses:     NewWarehouseRepository(q),
		Levels:         NewStockLevelRepository(q),
		Movements:      NewStockMovementRepository(q),
		Alerts:         NewStockAlertRepository(q),
		PartsUsed:      NewPartsUsedRepository(q),
		InvoiceItems:   NewInvoiceItemRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		Transfers:      NewStockTransferRepository(q),
		Counts:         NewStockCountRepository(q),
	}
}
