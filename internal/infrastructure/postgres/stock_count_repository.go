package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

// StockCountRepo conteos físicos.
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador.
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

// GetForUpdate conteo bloqueado para completarlo.
func (r *StockCountRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockCount, error) {
	var c entity.StockCount
	err := r.q.QueryRow(ctx, `
		SELECT id, warehouse_id, status, created_at, updated_at, completed_at
		FROM stock_counts WHERE id = $1 FOR UPDATE`, id,
	).Scan(&c.ID, &c.WarehouseID, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get stock count", err)
	}
	return &c, nil
}

// ListItems líneas del conteo en orden estable.
func (r *StockCountRepo) ListItems(ctx context.Context, countID string) ([]*entity.StockCountItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, count_id, item_id, counted_quantity, status
		FROM stock_count_items WHERE count_id = $1 ORDER BY id`, countID)
	if err != nil {
		return nil, storageErr("list stock count items", err)
	}
	defer rows.Close()
	var list []*entity.StockCountItem
	for rows.Next() {
		var it entity.StockCountItem
		if err := rows.Scan(&it.ID, &it.CountID, &it.ItemID, &it.CountedQuantity, &it.Status); err != nil {
			return nil, storageErr("scan stock count item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// MarkCompleted cierra el conteo.
func (r *StockCountRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_counts SET status = 'completed', completed_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return storageErr("complete stock count", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
