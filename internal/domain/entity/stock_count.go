package entity

import "time"

// Estados de un conteo físico y de sus líneas.
const (
	CountStatusInProgress = "in_progress"
	CountStatusCompleted  = "completed"

	CountItemStatusPending  = "pending"
	CountItemStatusAdjusted = "adjusted" // aprobada: el saldo se lleva a CountedQuantity al completar
)

// StockCount conteo físico de una bodega.
type StockCount struct {
	ID          string
	WarehouseID string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// StockCountItem cantidad contada de un repuesto.
type StockCountItem struct {
	ID              string
	CountID         string
	ItemID          string
	CountedQuantity int
	Status          string
}
