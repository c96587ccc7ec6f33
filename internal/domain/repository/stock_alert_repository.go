package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// AlertFilter filtros del listado de alertas activas.
type AlertFilter struct {
	ItemID      string
	WarehouseID string
	Type        string
	Limit       int
	Offset      int
}

// StockAlertRepository define el puerto de persistencia para alertas de stock (DIP).
type StockAlertRepository interface {
	GetActive(ctx context.Context, itemID, warehouseID string) (*entity.StockAlert, error)
	Create(ctx context.Context, alert *entity.StockAlert) error
	Update(ctx context.Context, alert *entity.StockAlert) error
	ListActive(ctx context.Context, filter AlertFilter) ([]*entity.StockAlert, error)
}
