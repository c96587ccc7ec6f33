package repair

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// PartsUseCase consumo de repuestos en reparaciones. Cada consumo genera una salida (OUT)
// enlazada por CauseRef "parts-used:<id>".
type PartsUseCase struct {
	ledger       *inventory.StockLedger
	invoiceItems repository.InvoiceItemRepository
	log          *logger.Logger
}

// NewPartsUseCase construye el caso de uso. invoiceItems opera fuera de la transacción del consumo.
func NewPartsUseCase(ledger *inventory.StockLedger, invoiceItems repository.InvoiceItemRepository, log *logger.Logger) *PartsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PartsUseCase{ledger: ledger, invoiceItems: invoiceItems, log: log.Component("repair_parts")}
}

// CreatePartsInput alta de un consumo. WarehouseID vacío = resolución automática.
type CreatePartsInput struct {
	RepairID    string
	ItemID      string
	WarehouseID string
	Quantity    int
	UnitCost    *decimal.Decimal
	Note        string
	ActorID     string
}

// UpdatePartsInput cambios permitidos sobre un consumo.
type UpdatePartsInput struct {
	WarehouseID string
	Quantity    int
	UnitCost    *decimal.Decimal
	Note        string
	ActorID     string
}

// Create registra el consumo y descuenta el stock en la misma transacción.
func (uc *PartsUseCase) Create(ctx context.Context, in CreatePartsInput) (*entity.PartsUsed, error) {
	if in.RepairID == "" || in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.PartsUsed
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		item, err := repos.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %s: %w", in.ItemID, domain.ErrNotFound)
		}
		whID, err := uc.ledger.ResolveSourceWarehouse(ctx, repos, in.ItemID, in.WarehouseID)
		if err != nil {
			return err
		}
		unitCost := item.PurchasePrice
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		now := time.Now().UTC()
		p := &entity.PartsUsed{
			ID:          uuid.New().String(),
			RepairID:    in.RepairID,
			ItemID:      in.ItemID,
			WarehouseID: whID,
			Quantity:    in.Quantity,
			UnitCost:    unitCost,
			TotalCost:   domaininv.LineCost(unitCost, in.Quantity),
			Note:        in.Note,
			CreatedBy:   in.ActorID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.PartsUsed.Create(ctx, p); err != nil {
			return err
		}
		if _, err := uc.ledger.ApplyInTx(ctx, repos, consumption(p, in.ActorID)); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update cambia cantidad/bodega/costo: revierte la salida anterior y aplica la nueva en una transacción.
func (uc *PartsUseCase) Update(ctx context.Context, id string, in UpdatePartsInput) (*entity.PartsUsed, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.PartsUsed
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		p, err := repos.PartsUsed.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("consumo %s: %w", id, domain.ErrNotFound)
		}
		if in.WarehouseID != "" {
			p.WarehouseID = in.WarehouseID
		}
		if in.UnitCost != nil {
			p.UnitCost = *in.UnitCost
		}
		if in.Note != "" {
			p.Note = in.Note
		}
		p.Quantity = in.Quantity
		p.TotalCost = domaininv.LineCost(p.UnitCost, p.Quantity)
		p.UpdatedAt = time.Now().UTC()

		next := consumption(p, in.ActorID)
		if _, err := uc.ledger.ReplaceByCauseInTx(ctx, repos, next.CauseRef, &next); err != nil {
			return err
		}
		if err := repos.PartsUsed.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete devuelve el stock consumido y retira el registro. Las líneas de factura generadas
// desde el consumo se retiran después del commit; si eso falla solo se registra en el log.
func (uc *PartsUseCase) Delete(ctx context.Context, id string) error {
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		p, err := repos.PartsUsed.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("consumo %s: %w", id, domain.ErrNotFound)
		}
		if _, err := uc.ledger.ReplaceByCauseInTx(ctx, repos, domaininv.CauseRef(domaininv.CausePartsUsed, p.ID), nil); err != nil {
			return err
		}
		return repos.PartsUsed.SoftDelete(ctx, p.ID)
	})
	if err != nil {
		return err
	}

	n, err := uc.invoiceItems.SoftDeleteByPartsUsed(ctx, id)
	if err != nil {
		uc.log.Warn().Err(err).Str("parts_used_id", id).Msg("no se pudieron retirar las líneas de factura del consumo")
		return nil
	}
	if n > 0 {
		uc.log.Info().Str("parts_used_id", id).Int("invoice_items", n).Msg("líneas de factura del consumo retiradas")
	}
	return nil
}

func consumption(p *entity.PartsUsed, actorID string) inventory.MovementInput {
	if actorID == "" {
		actorID = p.CreatedBy
	}
	return inventory.MovementInput{
		Type:            entity.MovementTypeOUT,
		ItemID:          p.ItemID,
		Quantity:        p.Quantity,
		FromWarehouseID: p.WarehouseID,
		ActorID:         actorID,
		Note:            fmt.Sprintf("Consumo en reparación #%s", p.RepairID),
		CauseRef:        domaininv.CauseRef(domaininv.CausePartsUsed, p.ID),
	}
}
