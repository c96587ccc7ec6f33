package postgres

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo líneas de pedidos de compra.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// ListItems líneas del pedido bloqueadas para la recepción.
func (r *PurchaseOrderRepo) ListItems(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, item_id, warehouse_id, quantity, received_quantity, unit_cost
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id FOR UPDATE`, purchaseOrderID)
	if err != nil {
		return nil, storageErr("list purchase order items", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var (
			it   entity.PurchaseOrderItem
			whID *string
		)
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ItemID, &whID, &it.Quantity, &it.ReceivedQuantity, &it.UnitCost); err != nil {
			return nil, storageErr("scan purchase order item", err)
		}
		it.WarehouseID = fromNull(whID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// SetReceived fija la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) SetReceived(ctx context.Context, itemID string, receivedQuantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`, itemID, receivedQuantity)
	if err != nil {
		return storageErr("set received quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
