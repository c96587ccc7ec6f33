package entity

import "time"

// Tipos de movimiento del ledger. La dirección la da el tipo, nunca el signo de la cantidad.
const (
	MovementTypeIN       = "IN"       // entrada a ToWarehouseID
	MovementTypeOUT      = "OUT"      // salida de FromWarehouseID
	MovementTypeTRANSFER = "TRANSFER" // traslado From -> To
)

// Estados de un movimiento.
const (
	MovementStatusActive     = "active"
	MovementStatusSuperseded = "superseded"
)

// StockMovement es una entrada del ledger de inventario.
// CauseRef enlaza el movimiento con el evento de negocio que lo originó (consumo en reparación,
// línea de factura, recepción de compra); como máximo un movimiento activo por CauseRef.
type StockMovement struct {
	ID              string
	Type            string
	ItemID          string
	Quantity        int // siempre positiva
	FromWarehouseID string
	ToWarehouseID   string
	ActorID         string
	Note            string
	CauseRef        string
	Status          string
	CreatedAt       time.Time
	SupersededAt    *time.Time
	// OpenedDestination el saldo de destino no existía (o estaba retirado) antes del movimiento;
	// al revertirlo el saldo vuelve a retirarse si queda en cero.
	OpenedDestination bool
}

// IsActive indica si el movimiento sigue vigente (no revertido).
func (m *StockMovement) IsActive() bool {
	return m.Status == MovementStatusActive
}
