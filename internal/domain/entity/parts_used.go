package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartsUsed registra un repuesto consumido en una reparación.
type PartsUsed struct {
	ID            string
	RepairID      string
	ItemID        string
	WarehouseID   string
	Quantity      int
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	InvoiceItemID string // línea de factura generada a partir de este consumo (si existe)
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
