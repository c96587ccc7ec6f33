package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacenan repuestos (ubicación del ledger).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	IsDefault bool // bodega usada cuando un consumo no indica ubicación y no hay saldo previo
	CreatedAt time.Time
	UpdatedAt time.Time
}
