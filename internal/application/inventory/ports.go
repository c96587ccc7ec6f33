package inventory

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Items          repository.InventoryItemRepository
	Warehouses     repository.WarehouseRepository
	Levels         repository.StockLevelRepository
	Movements      repository.StockMovementRepository
	Alerts         repository.StockAlertRepository
	PartsUsed      repository.PartsUsedRepository
	InvoiceItems   repository.InvoiceItemRepository
	PurchaseOrders repository.PurchaseOrderRepository
	Transfers      repository.StockTransferRepository
	Counts         repository.StockCountRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y no queda ningún efecto parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
