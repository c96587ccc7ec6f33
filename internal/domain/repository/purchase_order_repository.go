package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// PurchaseOrderRepository acceso a las líneas de pedidos de compra.
type PurchaseOrderRepository interface {
	ListItems(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error)
	SetReceived(ctx context.Context, itemID string, receivedQuantity int) error
}
