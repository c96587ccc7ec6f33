package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// StockTransferRepository acceso a traslados entre bodegas.
type StockTransferRepository interface {
	// GetForUpdate traslado vigente bloqueado; nil si no existe o fue eliminado.
	GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error)
	ListItems(ctx context.Context, transferID string) ([]*entity.StockTransferItem, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) error
	SoftDelete(ctx context.Context, id string) error
}
