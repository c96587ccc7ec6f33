package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidLocationPair = errors.New("combinación de bodegas inválida para el tipo de movimiento")
	ErrDuplicateCause      = errors.New("ya existe un movimiento activo para la misma causa")
	ErrAlreadyReversed     = errors.New("el movimiento ya fue revertido")
	ErrStorage             = errors.New("fallo de almacenamiento")
)

// InsufficientStockError detalla un rechazo por stock insuficiente.
// Available es la cantidad realmente disponible en la bodega origen al momento del rechazo.
type InsufficientStockError struct {
	ItemID      string
	WarehouseID string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: item %s en bodega %s, solicitado %d, disponible %d",
		e.ItemID, e.WarehouseID, e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// AvailableStock devuelve la cantidad disponible si err es un rechazo por stock insuficiente.
func AvailableStock(err error) (int, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise.Available, true
	}
	return 0, false
}
