package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.InvoiceItemRepository = (*InvoiceItemRepo)(nil)

// InvoiceItemRepo líneas de factura sobre PostgreSQL.
type InvoiceItemRepo struct {
	q Querier
}

// NewInvoiceItemRepository construye el adaptador. Acepta el pool o una tx.
func NewInvoiceItemRepository(q Querier) *InvoiceItemRepo {
	return &InvoiceItemRepo{q: q}
}

// Create inserta la línea.
func (r *InvoiceItemRepo) Create(ctx context.Context, it *entity.InvoiceItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_items (id, invoice_id, item_id, service_id, parts_used_id, warehouse_id, quantity,
			unit_price, total_price, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		it.ID, it.InvoiceID, nullString(it.ItemID), nullString(it.ServiceID), nullString(it.PartsUsedID),
		nullString(it.WarehouseID), it.Quantity, it.UnitPrice, it.TotalPrice, it.Description, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert invoice item", err)
	}
	return nil
}

// GetByID línea vigente por ID, bloqueada para la transacción.
func (r *InvoiceItemRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceItem, error) {
	var (
		it                         entity.InvoiceItem
		item, service, parts, whID *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, invoice_id, item_id, service_id, parts_used_id, warehouse_id, quantity, unit_price,
			total_price, description, created_at, updated_at, deleted_at
		FROM invoice_items WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&it.ID, &it.InvoiceID, &item, &service, &parts, &whID, &it.Quantity, &it.UnitPrice,
		&it.TotalPrice, &it.Description, &it.CreatedAt, &it.UpdatedAt, &it.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get invoice item", err)
	}
	it.ItemID, it.ServiceID, it.PartsUsedID, it.WarehouseID = fromNull(item), fromNull(service), fromNull(parts), fromNull(whID)
	return &it, nil
}

// Update persiste cantidad, precios, bodega y descripción.
func (r *InvoiceItemRepo) Update(ctx context.Context, it *entity.InvoiceItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoice_items SET warehouse_id = $2, quantity = $3, unit_price = $4, total_price = $5,
			description = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`,
		it.ID, nullString(it.WarehouseID), it.Quantity, it.UnitPrice, it.TotalPrice, it.Description, it.UpdatedAt,
	)
	if err != nil {
		return storageErr("update invoice item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete retira la línea.
func (r *InvoiceItemRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE invoice_items SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return storageErr("soft delete invoice item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDeleteByPartsUsed retira las líneas generadas desde un consumo.
func (r *InvoiceItemRepo) SoftDeleteByPartsUsed(ctx context.Context, partsUsedID string) (int, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE invoice_items SET deleted_at = now(), updated_at = now()
		WHERE parts_used_id = $1 AND deleted_at IS NULL`, partsUsedID)
	if err != nil {
		return 0, storageErr("soft delete invoice items by parts", err)
	}
	return int(cmd.RowsAffected()), nil
}
