package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo lectura del catálogo de repuestos.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador.
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// GetByID obtiene un repuesto vigente por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, `
		SELECT id, sku, name, purchase_price, selling_price, created_at, updated_at, deleted_at
		FROM inventory_items WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&it.ID, &it.SKU, &it.Name, &it.PurchasePrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt, &it.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get inventory item", err)
	}
	return &it, nil
}
