package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// StockLevelRepository define el puerto de persistencia para saldos por item/bodega (DIP).
type StockLevelRepository interface {
	Get(ctx context.Context, itemID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate lee el saldo bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, itemID, warehouseID string) (*entity.StockLevel, error)
	// Adjust crea la fila en 0 si no existe y aplica delta en un solo paso atómico.
	// Si el resultado quedaría negativo devuelve *domain.InsufficientStockError y no modifica nada.
	Adjust(ctx context.Context, itemID, warehouseID string, delta, minLevelIfCreating int) (*entity.StockLevel, error)
	SetMinimum(ctx context.Context, itemID, warehouseID string, minLevel int) (*entity.StockLevel, error)
	// ListByItem saldos vigentes del item ordenados por cantidad descendente.
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockLevel, error)
	// SoftDelete retira un saldo en cero; devuelve domain.ErrConflict si aún tiene existencias.
	SoftDelete(ctx context.Context, itemID, warehouseID string) error
}
