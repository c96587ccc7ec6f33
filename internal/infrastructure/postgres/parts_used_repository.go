package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.PartsUsedRepository = (*PartsUsedRepo)(nil)

// PartsUsedRepo consumos de repuestos en reparaciones.
type PartsUsedRepo struct {
	q Querier
}

// NewPartsUsedRepository construye el adaptador.
func NewPartsUsedRepository(q Querier) *PartsUsedRepo {
	return &PartsUsedRepo{q: q}
}

// Create inserta el consumo.
func (r *PartsUsedRepo) Create(ctx context.Context, p *entity.PartsUsed) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO parts_used (id, repair_id, item_id, warehouse_id, quantity, unit_cost, total_cost,
			invoice_item_id, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.RepairID, p.ItemID, p.WarehouseID, p.Quantity, p.UnitCost, p.TotalCost,
		nullString(p.InvoiceItemID), p.Note, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert parts used", err)
	}
	return nil
}

// GetByID consumo vigente por ID, bloqueado para la transacción.
func (r *PartsUsedRepo) GetByID(ctx context.Context, id string) (*entity.PartsUsed, error) {
	var (
		p       entity.PartsUsed
		invoice *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, repair_id, item_id, warehouse_id, quantity, unit_cost, total_cost, invoice_item_id,
			note, created_by, created_at, updated_at, deleted_at
		FROM parts_used WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&p.ID, &p.RepairID, &p.ItemID, &p.WarehouseID, &p.Quantity, &p.UnitCost, &p.TotalCost, &invoice,
		&p.Note, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get parts used", err)
	}
	p.InvoiceItemID = fromNull(invoice)
	return &p, nil
}

// Update persiste cantidad, bodega y costos.
func (r *PartsUsedRepo) Update(ctx context.Context, p *entity.PartsUsed) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE parts_used SET warehouse_id = $2, quantity = $3, unit_cost = $4, total_cost = $5,
			note = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.WarehouseID, p.Quantity, p.UnitCost, p.TotalCost, p.Note, p.UpdatedAt,
	)
	if err != nil {
		return storageErr("update parts used", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete retira el consumo.
func (r *PartsUsedRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE parts_used SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return storageErr("soft delete parts used", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LinkInvoiceItem enlaza o desenlaza ("") la línea de factura generada desde el consumo.
func (r *PartsUsedRepo) LinkInvoiceItem(ctx context.Context, id, invoiceItemID string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE parts_used SET invoice_item_id = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id, nullString(invoiceItemID))
	if err != nil {
		return storageErr("link invoice item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
