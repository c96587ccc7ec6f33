package dto

import (
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements y PUT /api/inventory/movements/:id.
type RegisterMovementRequest struct {
	Type            string `json:"type" validate:"required,oneof=IN OUT TRANSFER"`
	ItemID          string `json:"item_id" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	FromWarehouseID string `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string `json:"to_warehouse_id,omitempty"`
	Note            string `json:"note,omitempty" validate:"max=500"`
}

// AdjustStockRequest body para POST /api/inventory/items/:item_id/adjust.
type AdjustStockRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Mode        string `json:"mode" validate:"required,oneof=add remove set"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	Note        string `json:"note,omitempty" validate:"max=500"`
}

// SetMinimumRequest body para PUT /api/inventory/stock/:item_id/:warehouse_id/minimum.
type SetMinimumRequest struct {
	MinLevel *int `json:"min_level" validate:"required,min=0"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	ItemID      string `query:"item_id"`
	WarehouseID string `query:"warehouse_id"`
	Status      string `query:"status" validate:"omitempty,oneof=active superseded"`
	CauseRef    string `query:"cause_ref"`
	PageRequest
}

// AlertQuery filtros de GET /api/inventory/alerts.
type AlertQuery struct {
	ItemID      string `query:"item_id"`
	WarehouseID string `query:"warehouse_id"`
	Type        string `query:"type" validate:"omitempty,oneof=out_of_stock low_stock"`
	PageRequest
}

// MovementResponse entrada del ledger.
type MovementResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	ItemID          string     `json:"item_id"`
	Quantity        int        `json:"quantity"`
	FromWarehouseID string     `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string     `json:"to_warehouse_id,omitempty"`
	ActorID         string     `json:"actor_id"`
	Note            string     `json:"note,omitempty"`
	CauseRef        string     `json:"cause_ref,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	SupersededAt    *time.Time `json:"superseded_at,omitempty"`
}

// MovementListResponse historial paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelResponse saldo de un item en una bodega.
type StockLevelResponse struct {
	ItemID      string `json:"item_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	MinLevel    int    `json:"min_level"`
	IsLow       bool   `json:"is_low"`
}

// StockAlertResponse alerta de stock.
type StockAlertResponse struct {
	ID              string     `json:"id"`
	ItemID          string     `json:"item_id"`
	WarehouseID     string     `json:"warehouse_id"`
	Type            string     `json:"alert_type"`
	Severity        string     `json:"severity"`
	CurrentQuantity int        `json:"current_quantity"`
	Threshold       int        `json:"threshold"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// AlertListResponse alertas activas paginadas.
type AlertListResponse struct {
	Items []StockAlertResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ToMovementResponse mapea la entidad a su salida HTTP.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		Type:            m.Type,
		ItemID:          m.ItemID,
		Quantity:        m.Quantity,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		ActorID:         m.ActorID,
		Note:            m.Note,
		CauseRef:        m.CauseRef,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		SupersededAt:    m.SupersededAt,
	}
}

func ToStockLevelResponse(l *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ItemID:      l.ItemID,
		WarehouseID: l.WarehouseID,
		Quantity:    l.Quantity,
		MinLevel:    l.MinLevel,
		IsLow:       l.IsLow,
	}
}

func ToStockAlertResponse(a *entity.StockAlert) StockAlertResponse {
	return StockAlertResponse{
		ID:              a.ID,
		ItemID:          a.ItemID,
		WarehouseID:     a.WarehouseID,
		Type:            a.Type,
		Severity:        a.Severity,
		CurrentQuantity: a.CurrentQuantity,
		Threshold:       a.Threshold,
		Message:         a.Message,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		ResolvedAt:      a.ResolvedAt,
	}
}
