package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem línea de factura. Solo mueve inventario si tiene ItemID y no está enlazada a un PartsUsed
// (el consumo ya fue descontado por la reparación).
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ItemID      string
	ServiceID   string
	PartsUsedID string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// TracksStock indica si la línea debe generar una salida de inventario propia.
func (i *InvoiceItem) TracksStock() bool {
	return i.ItemID != "" && i.PartsUsedID == ""
}
