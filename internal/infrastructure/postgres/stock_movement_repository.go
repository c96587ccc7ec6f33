package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, kind, item_id, quantity, from_warehouse_id, to_warehouse_id, actor_id, note,
	cause_ref, status, created_at, superseded_at, opened_destination`

// activeCauseIndex índice único parcial que garantiza un solo movimiento activo por causa.
const activeCauseIndex = "ux_stock_movements_active_cause"

// StockMovementRepo ledger de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia del ledger.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m             entity.StockMovement
		from, to, ref *string
	)
	err := row.Scan(&m.ID, &m.Type, &m.ItemID, &m.Quantity, &from, &to, &m.ActorID, &m.Note,
		&ref, &m.Status, &m.CreatedAt, &m.SupersededAt, &m.OpenedDestination)
	if err != nil {
		return nil, err
	}
	m.FromWarehouseID, m.ToWarehouseID, m.CauseRef = fromNull(from), fromNull(to), fromNull(ref)
	return &m, nil
}

// Create inserta el movimiento. El índice único parcial sobre cause_ref activo se traduce a ErrDuplicateCause.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, kind, item_id, quantity, from_warehouse_id, to_warehouse_id,
			actor_id, note, cause_ref, status, created_at, opened_destination)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.Type, m.ItemID, m.Quantity, nullString(m.FromWarehouseID), nullString(m.ToWarehouseID),
		m.ActorID, m.Note, nullString(m.CauseRef), m.Status, m.CreatedAt, m.OpenedDestination,
	)
	if err != nil {
		if violatesConstraint(err, activeCauseIndex) {
			return domain.ErrDuplicateCause
		}
		return storageErr("insert stock movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.one(ctx, `SELECT `+stockMovementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetForUpdate obtiene un movimiento bloqueando la fila.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.one(ctx, `SELECT `+stockMovementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`, id)
}

// FindActiveByCause movimiento activo para la causa, bloqueado.
func (r *StockMovementRepo) FindActiveByCause(ctx context.Context, causeRef string) (*entity.StockMovement, error) {
	return r.one(ctx, `SELECT `+stockMovementColumns+` FROM stock_movements
		WHERE cause_ref = $1 AND status = 'active' FOR UPDATE`, causeRef)
}

func (r *StockMovementRepo) one(ctx context.Context, query string, arg any) (*entity.StockMovement, error) {
	m, err := scanStockMovement(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get stock movement", err)
	}
	return m, nil
}

// MarkSuperseded marca como revertido un movimiento activo.
func (r *StockMovementRepo) MarkSuperseded(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_movements SET status = 'superseded', superseded_at = $2
		WHERE id = $1 AND status = 'active'`, id, at)
	if err != nil {
		return storageErr("supersede stock movement", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyReversed
}

// List historial filtrado, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.WarehouseID != "" {
		args = append(args, f.WarehouseID)
		n := len(args)
		where = append(where, fmt.Sprintf("(from_warehouse_id = $%d OR to_warehouse_id = $%d)", n, n))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.CauseRef != "" {
		add("cause_ref = $%d", f.CauseRef)
	}

	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, storageErr("scan stock movement", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
