package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// InvoiceItemRepository persistencia de líneas de factura.
type InvoiceItemRepository interface {
	Create(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.InvoiceItem, error)
	Update(ctx context.Context, item *entity.InvoiceItem) error
	SoftDelete(ctx context.Context, id string) error
	// SoftDeleteByPartsUsed retira las líneas generadas desde un consumo; devuelve cuántas.
	SoftDeleteByPartsUsed(ctx context.Context, partsUsedID string) (int, error)
}
