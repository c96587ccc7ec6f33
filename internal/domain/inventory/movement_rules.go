package inventory

import (
	"sort"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// StockDelta variación firmada que un movimiento aplica sobre el saldo de una bodega.
type StockDelta struct {
	WarehouseID string
	Delta       int
}

// ValidateMovement verifica las precondiciones estáticas de un movimiento (sin tocar almacenamiento).
//   - IN requiere destino, OUT requiere origen, TRANSFER ambos y distintos.
//   - Una bodega que el tipo no usa también se rechaza para que el ledger no guarde datos ambiguos.
func ValidateMovement(m *entity.StockMovement) error {
	if m.ItemID == "" || m.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	switch m.Type {
	case entity.MovementTypeIN:
		if m.ToWarehouseID == "" || m.FromWarehouseID != "" {
			return domain.ErrInvalidLocationPair
		}
	case entity.MovementTypeOUT:
		if m.FromWarehouseID == "" || m.ToWarehouseID != "" {
			return domain.ErrInvalidLocationPair
		}
	case entity.MovementTypeTRANSFER:
		if m.FromWarehouseID == "" || m.ToWarehouseID == "" || m.FromWarehouseID == m.ToWarehouseID {
			return domain.ErrInvalidLocationPair
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// BalanceDeltas devuelve las variaciones de saldo del movimiento, primero el origen.
// El orden importa: la salida valida disponibilidad antes de sumar en destino.
func BalanceDeltas(m *entity.StockMovement) []StockDelta {
	switch m.Type {
	case entity.MovementTypeIN:
		return []StockDelta{{WarehouseID: m.ToWarehouseID, Delta: m.Quantity}}
	case entity.MovementTypeOUT:
		return []StockDelta{{WarehouseID: m.FromWarehouseID, Delta: -m.Quantity}}
	case entity.MovementTypeTRANSFER:
		return []StockDelta{
			{WarehouseID: m.FromWarehouseID, Delta: -m.Quantity},
			{WarehouseID: m.ToWarehouseID, Delta: m.Quantity},
		}
	}
	return nil
}

// Invert construye el inverso exacto de un movimiento:
// IN -> OUT desde el mismo destino, OUT -> IN al mismo origen, TRANSFER con origen/destino invertidos.
// El resultado no es una entrada del ledger; solo describe el efecto a deshacer.
func Invert(m *entity.StockMovement) *entity.StockMovement {
	inv := &entity.StockMovement{
		ItemID:   m.ItemID,
		Quantity: m.Quantity,
		ActorID:  m.ActorID,
		CauseRef: m.CauseRef,
	}
	switch m.Type {
	case entity.MovementTypeIN:
		inv.Type = entity.MovementTypeOUT
		inv.FromWarehouseID = m.ToWarehouseID
	case entity.MovementTypeOUT:
		inv.Type = entity.MovementTypeIN
		inv.ToWarehouseID = m.FromWarehouseID
	case entity.MovementTypeTRANSFER:
		inv.Type = entity.MovementTypeTRANSFER
		inv.FromWarehouseID = m.ToWarehouseID
		inv.ToWarehouseID = m.FromWarehouseID
	}
	return inv
}

// WarehouseIDs bodegas referenciadas por el movimiento.
func WarehouseIDs(m *entity.StockMovement) []string {
	ids := make([]string, 0, 2)
	if m.FromWarehouseID != "" {
		ids = append(ids, m.FromWarehouseID)
	}
	if m.ToWarehouseID != "" {
		ids = append(ids, m.ToWarehouseID)
	}
	return ids
}

// LockOrder bodegas del movimiento ordenadas por ID. Todas las transacciones bloquean los saldos
// en este orden, independiente de cuál sea origen o destino.
func LockOrder(m *entity.StockMovement) []string {
	ids := WarehouseIDs(m)
	sort.Strings(ids)
	return ids
}
