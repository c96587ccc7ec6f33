package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

const stockLevelColumns = `item_id, warehouse_id, quantity, min_level, is_low, created_at, updated_at, deleted_at`

// StockLevelRepo saldos por item/bodega sobre PostgreSQL.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de persistencia para saldos.
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var l entity.StockLevel
	err := row.Scan(&l.ItemID, &l.WarehouseID, &l.Quantity, &l.MinLevel, &l.IsLow, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Get obtiene el saldo vigente; nil si no existe o está retirado.
func (r *StockLevelRepo) Get(ctx context.Context, itemID, warehouseID string) (*entity.StockLevel, error) {
	return r.get(ctx, itemID, warehouseID, "")
}

// GetForUpdate obtiene el saldo vigente con SELECT FOR UPDATE.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, itemID, warehouseID string) (*entity.StockLevel, error) {
	return r.get(ctx, itemID, warehouseID, " FOR UPDATE")
}

func (r *StockLevelRepo) get(ctx context.Context, itemID, warehouseID, lock string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels
		WHERE item_id = $1 AND warehouse_id = $2 AND deleted_at IS NULL` + lock
	l, err := scanStockLevel(r.q.QueryRow(ctx, query, itemID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get stock level", err)
	}
	return l, nil
}

// Adjust crea la fila en cero si falta y aplica delta con un UPDATE condicional.
// La condición quantity + delta >= 0 se evalúa sobre la fila bloqueada, por lo que dos salidas
// concurrentes no pueden pasar ambas la verificación. Sin fila afectada = stock insuficiente.
func (r *StockLevelRepo) Adjust(ctx context.Context, itemID, warehouseID string, delta, minLevelIfCreating int) (*entity.StockLevel, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (item_id, warehouse_id, quantity, min_level, is_low, created_at, updated_at)
		VALUES ($1, $2, 0, $3::int, 0 <= $3::int, now(), now())
		ON CONFLICT (item_id, warehouse_id) DO NOTHING`,
		itemID, warehouseID, minLevelIfCreating,
	)
	if err != nil {
		return nil, storageErr("upsert stock level", err)
	}

	query := `
		UPDATE stock_levels
		SET quantity = quantity + $3::int,
		    is_low = quantity + $3::int <= min_level,
		    deleted_at = NULL,
		    updated_at = now()
		WHERE item_id = $1 AND warehouse_id = $2 AND quantity + $3::int >= 0
		RETURNING ` + stockLevelColumns
	l, err := scanStockLevel(r.q.QueryRow(ctx, query, itemID, warehouseID, delta))
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isCheckViolation(err) {
			return nil, r.insufficient(ctx, itemID, warehouseID, delta)
		}
		return nil, storageErr("adjust stock level", err)
	}
	return nil, r.insufficient(ctx, itemID, warehouseID, delta)
}

func (r *StockLevelRepo) insufficient(ctx context.Context, itemID, warehouseID string, delta int) error {
	var available int
	err := r.q.QueryRow(ctx,
		`SELECT quantity FROM stock_levels WHERE item_id = $1 AND warehouse_id = $2`,
		itemID, warehouseID,
	).Scan(&available)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return storageErr("read available stock", err)
	}
	return &domain.InsufficientStockError{ItemID: itemID, WarehouseID: warehouseID, Requested: -delta, Available: available}
}

// SetMinimum fija min_level (creando el saldo si no existe) y recalcula is_low.
func (r *StockLevelRepo) SetMinimum(ctx context.Context, itemID, warehouseID string, minLevel int) (*entity.StockLevel, error) {
	query := `
		INSERT INTO stock_levels (item_id, warehouse_id, quantity, min_level, is_low, created_at, updated_at)
		VALUES ($1, $2, 0, $3::int, 0 <= $3::int, now(), now())
		ON CONFLICT (item_id, warehouse_id) DO UPDATE
		SET min_level = EXCLUDED.min_level,
		    is_low = stock_levels.quantity <= EXCLUDED.min_level,
		    deleted_at = NULL,
		    updated_at = now()
		RETURNING ` + stockLevelColumns
	l, err := scanStockLevel(r.q.QueryRow(ctx, query, itemID, warehouseID, minLevel))
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrInvalidInput
		}
		return nil, storageErr("set minimum", err)
	}
	return l, nil
}

// ListByItem saldos vigentes del item, mayor cantidad primero.
func (r *StockLevelRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockLevelColumns+` FROM stock_levels
		WHERE item_id = $1 AND deleted_at IS NULL
		ORDER BY quantity DESC, warehouse_id`, itemID)
	if err != nil {
		return nil, storageErr("list stock levels", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		l, err := scanStockLevel(rows)
		if err != nil {
			return nil, storageErr("scan stock level", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// SoftDelete retira un saldo solo si está en cero.
func (r *StockLevelRepo) SoftDelete(ctx context.Context, itemID, warehouseID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_levels SET deleted_at = now(), updated_at = now()
		WHERE item_id = $1 AND warehouse_id = $2 AND deleted_at IS NULL AND quantity = 0`,
		itemID, warehouseID,
	)
	if err != nil {
		return storageErr("soft delete stock level", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	l, err := r.Get(ctx, itemID, warehouseID)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}
