package entity

import "github.com/shopspring/decimal"

// PurchaseOrderItem línea de un pedido de compra; al recibirse genera una entrada (IN).
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ItemID           string
	WarehouseID      string
	Quantity         int
	ReceivedQuantity int
	UnitCost         decimal.Decimal
}
