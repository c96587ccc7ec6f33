// Package counts cierra conteos físicos llevando cada saldo a la cantidad contada.
package counts

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// CountUseCase completa conteos físicos.
type CountUseCase struct {
	ledger *inventory.StockLedger
	log    *logger.Logger
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(ledger *inventory.StockLedger, log *logger.Logger) *CountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CountUseCase{ledger: ledger, log: log.Component("stock_count")}
}

// CompleteResult líneas que movieron stock y líneas sin diferencia o sin aprobar.
type CompleteResult struct {
	CountID   string
	Adjusted  []string
	Unchanged []string
}

// Complete aplica las líneas aprobadas (status adjusted) del conteo: cada una fija el saldo de la bodega
// en la cantidad contada con CauseRef "stock-count-item:<id>". Todo o nada.
func (uc *CountUseCase) Complete(ctx context.Context, countID, actorID string) (*CompleteResult, error) {
	if countID == "" {
		return nil, domain.ErrInvalidInput
	}
	res := &CompleteResult{CountID: countID}
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		res.Adjusted, res.Unchanged = nil, nil
		c, err := repos.Counts.GetForUpdate(ctx, countID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("conteo %s: %w", countID, domain.ErrNotFound)
		}
		if c.Status == entity.CountStatusCompleted {
			return fmt.Errorf("conteo %s ya completado: %w", countID, domain.ErrConflict)
		}
		items, err := repos.Counts.ListItems(ctx, countID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Status != entity.CountItemStatusAdjusted {
				res.Unchanged = append(res.Unchanged, it.ID)
				continue
			}
			m, err := uc.ledger.SetQuantityInTx(ctx, repos, it.ItemID, c.WarehouseID, it.CountedQuantity, inventory.MovementInput{
				ActorID:  actorID,
				CauseRef: domaininv.CauseRef(domaininv.CauseStockCountItem, it.ID),
			})
			if err != nil {
				return err
			}
			if m == nil {
				res.Unchanged = append(res.Unchanged, it.ID)
				continue
			}
			res.Adjusted = append(res.Adjusted, it.ID)
		}
		return repos.Counts.MarkCompleted(ctx, countID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("count_id", countID).Int("adjusted", len(res.Adjusted)).Msg("conteo completado")
	return res, nil
}
