package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// CreateInvoiceItemRequest body para POST /api/invoices/:invoice_id/items.
type CreateInvoiceItemRequest struct {
	ItemID      string           `json:"item_id,omitempty" validate:"required_without_all=ServiceID PartsUsedID"`
	ServiceID   string           `json:"service_id,omitempty"`
	PartsUsedID string           `json:"parts_used_id,omitempty"`
	WarehouseID string           `json:"warehouse_id,omitempty"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Description string           `json:"description,omitempty" validate:"max=500"`
}

// UpdateInvoiceItemRequest body para PUT /api/invoices/items/:id.
type UpdateInvoiceItemRequest struct {
	WarehouseID string           `json:"warehouse_id,omitempty"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Description string           `json:"description,omitempty" validate:"max=500"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	ItemID      string          `json:"item_id,omitempty"`
	ServiceID   string          `json:"service_id,omitempty"`
	PartsUsedID string          `json:"parts_used_id,omitempty"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToInvoiceItemResponse(i *entity.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:          i.ID,
		InvoiceID:   i.InvoiceID,
		ItemID:      i.ItemID,
		ServiceID:   i.ServiceID,
		PartsUsedID: i.PartsUsedID,
		WarehouseID: i.WarehouseID,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		TotalPrice:  i.TotalPrice,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ReceivePurchaseOrderResponse resultado de POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderResponse struct {
	PurchaseOrderID string   `json:"purchase_order_id"`
	Received        []string `json:"received"`
	Skipped         []string `json:"skipped"`
}
