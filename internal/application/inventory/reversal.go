package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/inventory"
)

// Reverse revierte un movimiento en su propia transacción (flujo de borrado).
func (l *StockLedger) Reverse(ctx context.Context, entryID string) error {
	return l.WithinTx(ctx, func(repos TxRepos) error {
		_, err := l.ReverseInTx(ctx, repos, entryID)
		return err
	})
}

// EditMovement revierte el movimiento y aplica el reemplazo conservando su CauseRef, todo en una transacción.
// Si el reemplazo falla la reversión también se deshace.
func (l *StockLedger) EditMovement(ctx context.Context, entryID string, in MovementInput) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		m, err := l.EditInTx(ctx, repos, entryID, in)
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

// ReverseInTx aplica el inverso exacto del movimiento sobre los saldos y lo marca superseded.
// No escribe una entrada nueva en el ledger; el original queda como historial.
func (l *StockLedger) ReverseInTx(ctx context.Context, repos TxRepos, entryID string) (*entity.StockMovement, error) {
	m, err := repos.Movements.GetForUpdate(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("movimiento %s: %w", entryID, domain.ErrNotFound)
	}
	if !m.IsActive() {
		return nil, domain.ErrAlreadyReversed
	}

	if _, err := l.applyEffect(ctx, repos, inventory.Invert(m)); err != nil {
		return nil, err
	}
	at := l.now()
	if err := repos.Movements.MarkSuperseded(ctx, m.ID, at); err != nil {
		return nil, err
	}
	m.Status = entity.MovementStatusSuperseded
	m.SupersededAt = &at

	touched := inventory.WarehouseIDs(m)
	if m.OpenedDestination {
		// el saldo de destino lo abrió este movimiento: si quedó vacío vuelve a no existir
		retired, err := l.retireIfEmpty(ctx, repos, m.ItemID, m.ToWarehouseID)
		if err != nil {
			return nil, err
		}
		if retired {
			touched = without(touched, m.ToWarehouseID)
		}
	}
	if err := l.syncAlerts(ctx, repos, m.ItemID, touched); err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("entry_id", m.ID).
		Str("item_id", m.ItemID).
		Str("kind", m.Type).
		Int("quantity", m.Quantity).
		Str("cause_ref", m.CauseRef).
		Msg("movimiento revertido")
	return m, nil
}

// EditInTx reversión más reaplicación. El CauseRef del original se conserva sobre el de la entrada.
func (l *StockLedger) EditInTx(ctx context.Context, repos TxRepos, entryID string, in MovementInput) (*entity.StockMovement, error) {
	old, err := l.ReverseInTx(ctx, repos, entryID)
	if err != nil {
		return nil, err
	}
	in.CauseRef = old.CauseRef
	return l.ApplyInTx(ctx, repos, in)
}

// ReplaceByCauseInTx revierte el movimiento activo de causeRef (si existe) y aplica next (si no es nil).
// Es el punto de composición de los adaptadores de consumo para altas, ediciones y bajas.
func (l *StockLedger) ReplaceByCauseInTx(ctx context.Context, repos TxRepos, causeRef string, next *MovementInput) (*entity.StockMovement, error) {
	if causeRef == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := repos.Movements.FindActiveByCause(ctx, causeRef)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if _, err := l.ReverseInTx(ctx, repos, current.ID); err != nil {
			return nil, err
		}
	}
	if next == nil {
		return nil, nil
	}
	in := *next
	in.CauseRef = causeRef
	return l.ApplyInTx(ctx, repos, in)
}

// retireIfEmpty retira el saldo si está en cero y resuelve su alerta activa.
func (l *StockLedger) retireIfEmpty(ctx context.Context, repos TxRepos, itemID, warehouseID string) (bool, error) {
	level, err := repos.Levels.Get(ctx, itemID, warehouseID)
	if err != nil {
		return false, err
	}
	if level == nil || level.Quantity != 0 {
		return false, nil
	}
	if err := repos.Levels.SoftDelete(ctx, itemID, warehouseID); err != nil {
		return false, err
	}
	return true, l.resolveActiveAlert(ctx, repos, itemID, warehouseID)
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
