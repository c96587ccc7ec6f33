package entity

import "time"

// Estados de un traslado entre bodegas.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
)

// StockTransfer documento de traslado; al completarse genera un TRANSFER por línea.
type StockTransfer struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   string
	Status          string
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
	DeletedAt       *time.Time
}

// StockTransferItem línea de un traslado.
type StockTransferItem struct {
	ID                string
	TransferID        string
	ItemID            string
	RequestedQuantity int
	ReceivedQuantity  int
}

// Quantity cantidad que se mueve: la recibida si se registró, si no la solicitada.
func (i *StockTransferItem) Quantity() int {
	if i.ReceivedQuantity > 0 {
		return i.ReceivedQuantity
	}
	return i.RequestedQuantity
}
