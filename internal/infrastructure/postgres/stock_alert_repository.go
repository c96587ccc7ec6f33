package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

const stockAlertColumns = `id, item_id, warehouse_id, alert_type, severity, current_quantity, threshold, message,
	status, created_at, updated_at, resolved_at`

// StockAlertRepo alertas de stock sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de persistencia de alertas.
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

func scanStockAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	err := row.Scan(&a.ID, &a.ItemID, &a.WarehouseID, &a.Type, &a.Severity, &a.CurrentQuantity, &a.Threshold,
		&a.Message, &a.Status, &a.CreatedAt, &a.UpdatedAt, &a.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetActive alerta activa del par, bloqueada para el resto de la transacción.
func (r *StockAlertRepo) GetActive(ctx context.Context, itemID, warehouseID string) (*entity.StockAlert, error) {
	a, err := scanStockAlert(r.q.QueryRow(ctx, `SELECT `+stockAlertColumns+` FROM stock_alerts
		WHERE item_id = $1 AND warehouse_id = $2 AND status = 'active' FOR UPDATE`, itemID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get active alert", err)
	}
	return a, nil
}

// Create inserta la alerta asignando ID si falta.
func (r *StockAlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_alerts (id, item_id, warehouse_id, alert_type, severity, current_quantity, threshold,
			message, status, created_at, updated_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.ItemID, a.WarehouseID, a.Type, a.Severity, a.CurrentQuantity, a.Threshold,
		a.Message, a.Status, a.CreatedAt, a.UpdatedAt, nullTime(a.ResolvedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("alerta activa duplicada: %w", domain.ErrConflict)
		}
		return storageErr("insert stock alert", err)
	}
	return nil
}

// Update reescribe snapshot y estado de la alerta.
func (r *StockAlertRepo) Update(ctx context.Context, a *entity.StockAlert) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_alerts
		SET alert_type = $2, severity = $3, current_quantity = $4, threshold = $5, message = $6,
		    status = $7, updated_at = $8, resolved_at = $9
		WHERE id = $1`,
		a.ID, a.Type, a.Severity, a.CurrentQuantity, a.Threshold, a.Message, a.Status, a.UpdatedAt, nullTime(a.ResolvedAt),
	)
	if err != nil {
		return storageErr("update stock alert", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive alertas activas filtradas, más recientes primero.
func (r *StockAlertRepo) ListActive(ctx context.Context, f repository.AlertFilter) ([]*entity.StockAlert, error) {
	where := []string{"status = 'active'"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.WarehouseID != "" {
		add("warehouse_id = $%d", f.WarehouseID)
	}
	if f.Type != "" {
		add("alert_type = $%d", f.Type)
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM stock_alerts WHERE %s ORDER BY updated_at DESC, id LIMIT $%d OFFSET $%d`,
		stockAlertColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list stock alerts", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanStockAlert(rows)
		if err != nil {
			return nil, storageErr("scan stock alert", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
