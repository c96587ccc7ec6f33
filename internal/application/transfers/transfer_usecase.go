// Package transfers aplica al inventario los traslados entre bodegas.
package transfers

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

// TransferUseCase completa y elimina traslados. Cada línea genera un TRANSFER con
// CauseRef "stock-transfer-item:<id>".
type TransferUseCase struct {
	ledger *inventory.StockLedger
	log    *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(ledger *inventory.StockLedger, log *logger.Logger) *TransferUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TransferUseCase{ledger: ledger, log: log.Component("stock_transfer")}
}

// CompleteResult movimientos generados al completar un traslado.
type CompleteResult struct {
	TransferID  string
	MovementIDs []string
}

// Complete mueve cada línea de origen a destino y marca el traslado como completado.
// Si alguna línea no tiene stock suficiente no se mueve ninguna.
func (uc *TransferUseCase) Complete(ctx context.Context, transferID, actorID string) (*CompleteResult, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	res := &CompleteResult{TransferID: transferID}
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		res.MovementIDs = nil
		t, err := repos.Transfers.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}
		if t.Status == entity.TransferStatusCompleted {
			return fmt.Errorf("traslado %s ya completado: %w", transferID, domain.ErrConflict)
		}
		items, err := repos.Transfers.ListItems(ctx, transferID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("traslado %s sin líneas: %w", transferID, domain.ErrInvalidInput)
		}
		for _, it := range items {
			m, err := uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
				Type:            entity.MovementTypeTRANSFER,
				ItemID:          it.ItemID,
				Quantity:        it.Quantity(),
				FromWarehouseID: t.FromWarehouseID,
				ToWarehouseID:   t.ToWarehouseID,
				ActorID:         actorID,
				Note:            fmt.Sprintf("Traslado #%s", transferID),
				CauseRef:        domaininv.CauseRef(domaininv.CauseStockTransferItem, it.ID),
			})
			if err != nil {
				return err
			}
			res.MovementIDs = append(res.MovementIDs, m.ID)
		}
		return repos.Transfers.MarkCompleted(ctx, transferID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transfer_id", transferID).Int("lines", len(res.MovementIDs)).Msg("traslado completado")
	return res, nil
}

// Delete elimina el traslado. Si ya estaba completado revierte el movimiento de cada línea,
// lo que exige que el destino aún tenga el stock recibido.
func (uc *TransferUseCase) Delete(ctx context.Context, transferID string) error {
	return uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		t, err := repos.Transfers.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}
		items, err := repos.Transfers.ListItems(ctx, transferID)
		if err != nil {
			return err
		}
		for _, it := range items {
			cause := domaininv.CauseRef(domaininv.CauseStockTransferItem, it.ID)
			if _, err := uc.ledger.ReplaceByCauseInTx(ctx, repos, cause, nil); err != nil {
				return err
			}
		}
		return repos.Transfers.SoftDelete(ctx, transferID)
	})
}
