package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// PartsUsedRepository persistencia de consumos de repuestos en reparaciones.
type PartsUsedRepository interface {
	Create(ctx context.Context, p *entity.PartsUsed) error
	GetByID(ctx context.Context, id string) (*entity.PartsUsed, error)
	Update(ctx context.Context, p *entity.PartsUsed) error
	SoftDelete(ctx context.Context, id string) error
	// LinkInvoiceItem enlaza (o desenlaza con "") la línea de factura generada desde el consumo.
	LinkInvoiceItem(ctx context.Context, id, invoiceItemID string) error
}
