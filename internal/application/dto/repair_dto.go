package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// CreatePartsUsedRequest body para POST /api/repairs/:repair_id/parts.
// Sin warehouse_id se descuenta de la bodega con más saldo del repuesto.
type CreatePartsUsedRequest struct {
	ItemID      string           `json:"item_id" validate:"required"`
	WarehouseID string           `json:"warehouse_id,omitempty"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Note        string           `json:"note,omitempty" validate:"max=500"`
}

// UpdatePartsUsedRequest body para PUT /api/repairs/parts/:id.
type UpdatePartsUsedRequest struct {
	WarehouseID string           `json:"warehouse_id,omitempty"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Note        string           `json:"note,omitempty" validate:"max=500"`
}

// PartsUsedResponse consumo registrado.
type PartsUsedResponse struct {
	ID            string          `json:"id"`
	RepairID      string          `json:"repair_id"`
	ItemID        string          `json:"item_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	InvoiceItemID string          `json:"invoice_item_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ToPartsUsedResponse(p *entity.PartsUsed) PartsUsedResponse {
	return PartsUsedResponse{
		ID:            p.ID,
		RepairID:      p.RepairID,
		ItemID:        p.ItemID,
		WarehouseID:   p.WarehouseID,
		Quantity:      p.Quantity,
		UnitCost:      p.UnitCost,
		TotalCost:     p.TotalCost,
		InvoiceItemID: p.InvoiceItemID,
		Note:          p.Note,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
