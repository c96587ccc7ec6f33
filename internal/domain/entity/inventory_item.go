package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un repuesto del catálogo. El ledger solo lo referencia por ID.
type InventoryItem struct {
	ID            string
	SKU           string
	Name          string
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal // precio por defecto en líneas de factura
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
