package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertTypeOutOfStock = "out_of_stock"
	AlertTypeLowStock   = "low_stock"
)

// Severidades.
const (
	AlertSeverityCritical = "critical"
	AlertSeverityWarning  = "warning"
)

// Estados de la alerta.
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// StockAlert estado derivado de umbral para un par item/bodega.
// Como máximo una alerta activa por par; las resueltas se conservan como historial.
type StockAlert struct {
	ID              string
	ItemID          string
	WarehouseID     string
	Type            string
	Severity        string
	CurrentQuantity int // snapshot de cantidad al crear/refrescar
	Threshold       int // snapshot de MinLevel
	Message         string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ResolvedAt      *time.Time
}
