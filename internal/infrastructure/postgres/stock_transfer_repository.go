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

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo traslados entre bodegas.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador.
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// GetForUpdate traslado vigente bloqueado para completar o eliminar.
func (r *StockTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := r.q.QueryRow(ctx, `
		SELECT id, from_warehouse_id, to_warehouse_id, status, note, created_at, updated_at, completed_at, deleted_at
		FROM stock_transfers WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Status, &t.Note, &t.CreatedAt, &t.UpdatedAt,
		&t.CompletedAt, &t.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get stock transfer", err)
	}
	return &t, nil
}

// ListItems líneas del traslado en orden estable.
func (r *StockTransferRepo) ListItems(ctx context.Context, transferID string) ([]*entity.StockTransferItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_id, item_id, requested_quantity, received_quantity
		FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY id`, transferID)
	if err != nil {
		return nil, storageErr("list stock transfer items", err)
	}
	defer rows.Close()
	var list []*entity.StockTransferItem
	for rows.Next() {
		var it entity.StockTransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ItemID, &it.RequestedQuantity, &it.ReceivedQuantity); err != nil {
			return nil, storageErr("scan stock transfer item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// MarkCompleted cierra el traslado.
func (r *StockTransferRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_transfers SET status = 'completed', completed_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return storageErr("complete stock transfer", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete retira el traslado.
func (r *StockTransferRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_transfers SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return storageErr("delete stock transfer", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
