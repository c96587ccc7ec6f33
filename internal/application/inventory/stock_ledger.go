package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// LedgerOptions configuración del motor de movimientos.
type LedgerOptions struct {
	DefaultWarehouseID string        // bodega de respaldo para consumos sin ubicación
	TxTimeout          time.Duration // 0 = sin límite propio, solo el del contexto
}

// StockLedger es el motor de movimientos: valida, ajusta saldos, escribe el ledger
// y recalcula alertas dentro de una única transacción por operación.
type StockLedger struct {
	txRunner TxRunner
	log      *logger.Logger
	opts     LedgerOptions
	now      func() time.Time
}

// NewStockLedger construye el motor.
func NewStockLedger(txRunner TxRunner, log *logger.Logger, opts LedgerOptions) *StockLedger {
	if log == nil {
		log = logger.Nop()
	}
	return &StockLedger{
		txRunner: txRunner,
		log:      log.Component("stock_ledger"),
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock reemplaza el reloj (tests).
func (l *StockLedger) SetClock(now func() time.Time) {
	l.now = now
}

// MovementInput solicitud de movimiento. La dirección la da Type; Quantity siempre positiva.
type MovementInput struct {
	Type            string
	ItemID          string
	Quantity        int
	FromWarehouseID string
	ToWarehouseID   string
	ActorID         string
	Note            string
	CauseRef        string
}

func (in MovementInput) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		Type:            in.Type,
		ItemID:          in.ItemID,
		Quantity:        in.Quantity,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ActorID:         in.ActorID,
		Note:            in.Note,
		CauseRef:        in.CauseRef,
	}
}

// WithinTx ejecuta fn en una transacción aplicando el timeout configurado.
// Los adaptadores la usan para componer sus propias escrituras con el ledger.
func (l *StockLedger) WithinTx(ctx context.Context, fn func(repos TxRepos) error) error {
	if l.opts.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.TxTimeout)
		defer cancel()
	}
	return l.txRunner.Run(ctx, fn)
}

// ApplyMovement aplica un movimiento en su propia transacción.
func (l *StockLedger) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		m, err := l.ApplyInTx(ctx, repos, in)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyInTx aplica un movimiento dentro de una transacción abierta por el llamador.
// Orden: validación, ajuste de saldos (origen primero), alta en el ledger, alertas.
// Cualquier error debe abortar la transacción completa.
func (l *StockLedger) ApplyInTx(ctx context.Context, repos TxRepos, in MovementInput) (*entity.StockMovement, error) {
	m := in.toEntity()
	if err := inventory.ValidateMovement(m); err != nil {
		return nil, err
	}
	if err := l.checkReferences(ctx, repos, m); err != nil {
		return nil, err
	}
	if m.CauseRef != "" {
		existing, err := repos.Movements.FindActiveByCause(ctx, m.CauseRef)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicateCause
		}
	}

	opened, err := l.applyEffect(ctx, repos, m)
	if err != nil {
		return nil, err
	}

	m.ID = uuid.New().String()
	m.OpenedDestination = opened
	m.Status = entity.MovementStatusActive
	m.CreatedAt = l.now()
	// el índice único parcial sobre cause_ref cubre la carrera entre dos transacciones
	if err := repos.Movements.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := l.syncAlerts(ctx, repos, m.ItemID, inventory.WarehouseIDs(m)); err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("entry_id", m.ID).
		Str("item_id", m.ItemID).
		Str("kind", m.Type).
		Int("quantity", m.Quantity).
		Str("cause_ref", m.CauseRef).
		Msg("movimiento aplicado")
	return m, nil
}

// SetQuantityInTx lleva el saldo del par a target con un IN u OUT por la diferencia, leída con la fila
// bloqueada. base aporta actor, nota y CauseRef. Sin diferencia no registra movimiento y devuelve nil.
func (l *StockLedger) SetQuantityInTx(ctx context.Context, repos TxRepos, itemID, warehouseID string, target int, base MovementInput) (*entity.StockMovement, error) {
	if itemID == "" || warehouseID == "" || target < 0 {
		return nil, domain.ErrInvalidInput
	}
	level, err := repos.Levels.GetForUpdate(ctx, itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	current := 0
	if level != nil {
		current = level.Quantity
	}
	delta := target - current
	if delta == 0 {
		return nil, nil
	}

	mv := base
	mv.ItemID, mv.FromWarehouseID, mv.ToWarehouseID = itemID, "", ""
	if delta > 0 {
		mv.Type, mv.Quantity, mv.ToWarehouseID = entity.MovementTypeIN, delta, warehouseID
	} else {
		mv.Type, mv.Quantity, mv.FromWarehouseID = entity.MovementTypeOUT, -delta, warehouseID
	}
	if mv.Note == "" {
		mv.Note = fmt.Sprintf("Ajuste de inventario: %d -> %d", current, target)
	}
	return l.ApplyInTx(ctx, repos, mv)
}

// applyEffect ajusta los saldos del movimiento. Compartido por aplicación y reversión.
// Las filas existentes se bloquean antes en orden de bodega (inventory.LockOrder) para que un traslado
// A->B y otro B->A no se esperen mutuamente; el ajuste sigue siendo origen primero.
// Devuelve true si el saldo de destino no estaba vigente antes del movimiento.
func (l *StockLedger) applyEffect(ctx context.Context, repos TxRepos, m *entity.StockMovement) (bool, error) {
	existing := make(map[string]bool, 2)
	for _, whID := range inventory.LockOrder(m) {
		level, err := repos.Levels.GetForUpdate(ctx, m.ItemID, whID)
		if err != nil {
			return false, err
		}
		existing[whID] = level != nil
	}

	opened := false
	for _, d := range inventory.BalanceDeltas(m) {
		if _, err := repos.Levels.Adjust(ctx, m.ItemID, d.WarehouseID, d.Delta, 0); err != nil {
			var ise *domain.InsufficientStockError
			if errors.As(err, &ise) {
				ise.Requested = m.Quantity
			}
			return false, err
		}
		if d.Delta > 0 && !existing[d.WarehouseID] {
			opened = true
		}
	}
	return opened, nil
}

// checkReferences verifica que el item y las bodegas existan.
func (l *StockLedger) checkReferences(ctx context.Context, repos TxRepos, m *entity.StockMovement) error {
	item, err := repos.Items.GetByID(ctx, m.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %s: %w", m.ItemID, domain.ErrNotFound)
	}
	for _, id := range inventory.WarehouseIDs(m) {
		wh, err := repos.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("bodega %s: %w", id, domain.ErrNotFound)
		}
	}
	return nil
}

// ResolveSourceWarehouse determina la bodega de origen de un consumo.
// Orden: la solicitada; la de mayor saldo existente del item; la configurada por defecto; la marcada como default.
func (l *StockLedger) ResolveSourceWarehouse(ctx context.Context, repos TxRepos, itemID, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	levels, err := repos.Levels.ListByItem(ctx, itemID)
	if err != nil {
		return "", err
	}
	if len(levels) > 0 {
		return levels[0].WarehouseID, nil
	}
	if l.opts.DefaultWarehouseID != "" {
		return l.opts.DefaultWarehouseID, nil
	}
	wh, err := repos.Warehouses.GetDefault(ctx)
	if err != nil {
		return "", err
	}
	if wh == nil {
		return "", domain.ErrInvalidLocationPair
	}
	return wh.ID, nil
}
