package inventory

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/inventory"
)

// syncAlerts recalcula la alerta de cada saldo tocado y persiste la mutación.
func (l *StockLedger) syncAlerts(ctx context.Context, repos TxRepos, itemID string, warehouseIDs []string) error {
	for _, whID := range warehouseIDs {
		level, err := repos.Levels.Get(ctx, itemID, whID)
		if err != nil {
			return err
		}
		quantity, minLevel := 0, 0
		if level != nil {
			quantity, minLevel = level.Quantity, level.MinLevel
		}
		if err := l.syncAlert(ctx, repos, itemID, whID, quantity, minLevel); err != nil {
			return err
		}
	}
	return nil
}

func (l *StockLedger) syncAlert(ctx context.Context, repos TxRepos, itemID, warehouseID string, quantity, minLevel int) error {
	existing, err := repos.Alerts.GetActive(ctx, itemID, warehouseID)
	if err != nil {
		return err
	}
	mut := inventory.EvaluateAlert(itemID, warehouseID, quantity, minLevel, existing, l.now())
	switch mut.Action {
	case inventory.AlertCreate:
		return repos.Alerts.Create(ctx, mut.Alert)
	case inventory.AlertRefresh, inventory.AlertResolve:
		if err := repos.Alerts.Update(ctx, mut.Alert); err != nil {
			return err
		}
	default:
		return nil
	}
	l.log.Debug().
		Str("item_id", itemID).
		Str("warehouse_id", warehouseID).
		Str("action", mut.Action.String()).
		Str("alert_type", mut.Alert.Type).
		Msg("alerta de stock actualizada")
	return nil
}

// resolveActiveAlert cierra la alerta activa del par, si la hay. Se usa al retirar un saldo.
func (l *StockLedger) resolveActiveAlert(ctx context.Context, repos TxRepos, itemID, warehouseID string) error {
	existing, err := repos.Alerts.GetActive(ctx, itemID, warehouseID)
	if err != nil || existing == nil {
		return err
	}
	at := l.now()
	existing.Status = entity.AlertStatusResolved
	existing.ResolvedAt = &at
	existing.UpdatedAt = at
	return repos.Alerts.Update(ctx, existing)
}
