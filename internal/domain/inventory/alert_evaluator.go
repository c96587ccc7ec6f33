package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// AlertAction acción que debe persistirse tras evaluar un saldo.
type AlertAction int

const (
	AlertNoop    AlertAction = iota // nada que persistir
	AlertCreate                     // insertar una alerta activa nueva
	AlertRefresh                    // actualizar en sitio la alerta activa existente
	AlertResolve                    // marcar la alerta activa como resuelta
)

func (a AlertAction) String() string {
	switch a {
	case AlertCreate:
		return "create"
	case AlertRefresh:
		return "refresh"
	case AlertResolve:
		return "resolve"
	default:
		return "noop"
	}
}

// AlertMutation resultado de EvaluateAlert. Alert es nil solo cuando Action == AlertNoop.
type AlertMutation struct {
	Action AlertAction
	Alert  *entity.StockAlert
}

// IsLow regla del flag derivado del saldo.
func IsLow(quantity, minLevel int) bool {
	return quantity <= minLevel
}

// EvaluateAlert calcula la mutación de alerta para un saldo (quantity, minLevel).
// existing debe ser la alerta activa del par o nil; una alerta no activa se ignora.
// Es una función pura: mismas entradas, misma salida.
//
//	quantity <= 0             -> out_of_stock / critical
//	0 < quantity <= minLevel  -> low_stock / warning
//	quantity > minLevel       -> resolver la activa si existe
func EvaluateAlert(itemID, warehouseID string, quantity, minLevel int, existing *entity.StockAlert, now time.Time) AlertMutation {
	if existing != nil && existing.Status != entity.AlertStatusActive {
		existing = nil
	}

	if !IsLow(quantity, minLevel) {
		if existing == nil {
			return AlertMutation{Action: AlertNoop}
		}
		resolved := *existing
		resolved.Status = entity.AlertStatusResolved
		resolved.ResolvedAt = &now
		resolved.UpdatedAt = now
		return AlertMutation{Action: AlertResolve, Alert: &resolved}
	}

	alertType, severity := classify(quantity)
	message := AlertMessage(alertType, quantity, minLevel)

	if existing == nil {
		return AlertMutation{Action: AlertCreate, Alert: &entity.StockAlert{
			ItemID:          itemID,
			WarehouseID:     warehouseID,
			Type:            alertType,
			Severity:        severity,
			CurrentQuantity: quantity,
			Threshold:       minLevel,
			Message:         message,
			Status:          entity.AlertStatusActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		}}
	}

	if existing.Type == alertType && existing.Severity == severity &&
		existing.CurrentQuantity == quantity && existing.Threshold == minLevel && existing.Message == message {
		return AlertMutation{Action: AlertNoop}
	}
	refreshed := *existing
	refreshed.Type = alertType
	refreshed.Severity = severity
	refreshed.CurrentQuantity = quantity
	refreshed.Threshold = minLevel
	refreshed.Message = message
	refreshed.UpdatedAt = now
	return AlertMutation{Action: AlertRefresh, Alert: &refreshed}
}

func classify(quantity int) (alertType, severity string) {
	if quantity <= 0 {
		return entity.AlertTypeOutOfStock, entity.AlertSeverityCritical
	}
	return entity.AlertTypeLowStock, entity.AlertSeverityWarning
}

// AlertMessage plantilla determinística del mensaje de alerta.
func AlertMessage(alertType string, quantity, minLevel int) string {
	if alertType == entity.AlertTypeOutOfStock {
		return fmt.Sprintf("Repuesto agotado: %d unidades (mínimo %d)", quantity, minLevel)
	}
	return fmt.Sprintf("Stock bajo: %d / %d", quantity, minLevel)
}
