package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Modos de ajuste directo.
const (
	AdjustModeAdd    = "add"
	AdjustModeRemove = "remove"
	AdjustModeSet    = "set"
)

// AdjustmentUseCase ajustes directos de stock hechos por bodega. No llevan CauseRef:
// se editan y eliminan libremente sobre el movimiento.
type AdjustmentUseCase struct {
	ledger *StockLedger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(ledger *StockLedger) *AdjustmentUseCase {
	return &AdjustmentUseCase{ledger: ledger}
}

// AdjustInput ajuste por modo sobre un par item/bodega.
type AdjustInput struct {
	ItemID      string
	WarehouseID string
	Mode        string
	Quantity    int
	ActorID     string
	Note        string
}

// Register registra un movimiento manual (IN, OUT o TRANSFER).
func (uc *AdjustmentUseCase) Register(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	in.CauseRef = ""
	return uc.ledger.ApplyMovement(ctx, in)
}

// Adjust traduce add/remove/set a un movimiento IN u OUT. En set la diferencia se calcula
// con la fila bloqueada; si no hay diferencia no se registra movimiento y devuelve nil.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if in.ItemID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.StockMovement
	err := uc.ledger.WithinTx(ctx, func(repos TxRepos) error {
		mv := MovementInput{ItemID: in.ItemID, ActorID: in.ActorID, Note: in.Note}
		switch in.Mode {
		case AdjustModeAdd:
			mv.Type, mv.Quantity, mv.ToWarehouseID = entity.MovementTypeIN, in.Quantity, in.WarehouseID
		case AdjustModeRemove:
			mv.Type, mv.Quantity, mv.FromWarehouseID = entity.MovementTypeOUT, in.Quantity, in.WarehouseID
		case AdjustModeSet:
			m, err := uc.ledger.SetQuantityInTx(ctx, repos, in.ItemID, in.WarehouseID, in.Quantity, mv)
			out = m
			return err
		default:
			return domain.ErrInvalidInput
		}
		m, err := uc.ledger.ApplyInTx(ctx, repos, mv)
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

// Edit reemplaza un movimiento manual. Los movimientos con causa se editan desde su documento.
func (uc *AdjustmentUseCase) Edit(ctx context.Context, entryID string, in MovementInput) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := uc.ledger.WithinTx(ctx, func(repos TxRepos) error {
		if err := uc.ensureManual(ctx, repos, entryID); err != nil {
			return err
		}
		m, err := uc.ledger.EditInTx(ctx, repos, entryID, in)
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

// Delete revierte un movimiento manual.
func (uc *AdjustmentUseCase) Delete(ctx context.Context, entryID string) error {
	return uc.ledger.WithinTx(ctx, func(repos TxRepos) error {
		if err := uc.ensureManual(ctx, repos, entryID); err != nil {
			return err
		}
		_, err := uc.ledger.ReverseInTx(ctx, repos, entryID)
		return err
	})
}

func (uc *AdjustmentUseCase) ensureManual(ctx context.Context, repos TxRepos, entryID string) error {
	m, err := repos.Movements.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("movimiento %s: %w", entryID, domain.ErrNotFound)
	}
	if m.CauseRef != "" {
		return fmt.Errorf("movimiento %s pertenece a %s: %w", entryID, m.CauseRef, domain.ErrConflict)
	}
	return nil
}
