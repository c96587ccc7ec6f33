package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// InventoryItemRepository lectura del catálogo de repuestos.
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
}
