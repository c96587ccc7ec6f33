package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetBalance devuelve el saldo del par item/bodega. Un par sin movimientos tiene saldo cero.
func (l *StockLedger) GetBalance(ctx context.Context, itemID, warehouseID string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		if err := checkPair(ctx, repos, itemID, warehouseID); err != nil {
			return err
		}
		level, err := repos.Levels.Get(ctx, itemID, warehouseID)
		if err != nil {
			return err
		}
		if level == nil {
			level = &entity.StockLevel{ItemID: itemID, WarehouseID: warehouseID, IsLow: inventory.IsLow(0, 0)}
		}
		out = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetMinimum fija el umbral mínimo y recalcula is_low y la alerta en la misma transacción.
func (l *StockLedger) SetMinimum(ctx context.Context, itemID, warehouseID string, minLevel int) (*entity.StockLevel, error) {
	if minLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.StockLevel
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		if err := checkPair(ctx, repos, itemID, warehouseID); err != nil {
			return err
		}
		level, err := repos.Levels.SetMinimum(ctx, itemID, warehouseID, minLevel)
		if err != nil {
			return err
		}
		if err := l.syncAlert(ctx, repos, itemID, warehouseID, level.Quantity, level.MinLevel); err != nil {
			return err
		}
		out = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RetireBalance retira (soft delete) un saldo en cero y resuelve su alerta activa.
func (l *StockLedger) RetireBalance(ctx context.Context, itemID, warehouseID string) error {
	return l.WithinTx(ctx, func(repos TxRepos) error {
		if err := repos.Levels.SoftDelete(ctx, itemID, warehouseID); err != nil {
			return err
		}
		return l.resolveActiveAlert(ctx, repos, itemID, warehouseID)
	})
}

// ListActiveAlerts snapshot de las alertas activas según filtro.
func (l *StockLedger) ListActiveAlerts(ctx context.Context, filter repository.AlertFilter) ([]*entity.StockAlert, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	var out []*entity.StockAlert
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		list, err := repos.Alerts.ListActive(ctx, filter)
		out = list
		return err
	})
	return out, err
}

// ListMovements historial del ledger, más reciente primero.
func (l *StockLedger) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	var out []*entity.StockMovement
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		list, err := repos.Movements.List(ctx, filter)
		out = list
		return err
	})
	return out, err
}

// GetMovement un movimiento por ID.
func (l *StockLedger) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := l.WithinTx(ctx, func(repos TxRepos) error {
		m, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func checkPair(ctx context.Context, repos TxRepos, itemID, warehouseID string) error {
	item, err := repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	wh, err := repos.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}
	return nil
}
