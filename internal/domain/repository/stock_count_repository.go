package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// StockCountRepository acceso a conteos físicos.
type StockCountRepository interface {
	GetForUpdate(ctx context.Context, id string) (*entity.StockCount, error)
	ListItems(ctx context.Context, countID string) ([]*entity.StockCountItem, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) error
}
