package entity

import "time"

// StockLevel es el saldo actual de un repuesto en una bodega (una fila por par item/bodega).
// Invariantes: Quantity >= 0 en reposo; IsLow == (Quantity <= MinLevel).
type StockLevel struct {
	ItemID      string
	WarehouseID string
	Quantity    int
	MinLevel    int
	IsLow       bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
