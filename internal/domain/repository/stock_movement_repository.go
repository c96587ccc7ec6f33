package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ItemID      string
	WarehouseID string // coincide con origen o destino
	Status      string
	CauseRef    string
	Limit       int
	Offset      int
}

// StockMovementRepository define el puerto de persistencia del ledger de inventario (DIP).
type StockMovementRepository interface {
	// Create inserta el movimiento; devuelve domain.ErrDuplicateCause si ya hay uno activo con el mismo CauseRef.
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	FindActiveByCause(ctx context.Context, causeRef string) (*entity.StockMovement, error)
	// MarkSuperseded marca el movimiento como revertido; domain.ErrAlreadyReversed si no estaba activo.
	MarkSuperseded(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
