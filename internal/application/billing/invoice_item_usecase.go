package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
)

// InvoiceItemUseCase líneas de factura. Una línea de repuesto descuenta stock con CauseRef
// "invoice-item:<id>" solo si no proviene de un consumo de reparación ya descontado.
type InvoiceItemUseCase struct {
	ledger *inventory.StockLedger
}

// NewInvoiceItemUseCase construye el caso de uso.
func NewInvoiceItemUseCase(ledger *inventory.StockLedger) *InvoiceItemUseCase {
	return &InvoiceItemUseCase{ledger: ledger}
}

// CreateInvoiceItemInput alta de línea. Debe indicar ItemID, ServiceID o PartsUsedID.
type CreateInvoiceItemInput struct {
	InvoiceID   string
	ItemID      string
	ServiceID   string
	PartsUsedID string
	WarehouseID string
	Quantity    int
	UnitPrice   *decimal.Decimal
	Description string
	ActorID     string
}

// UpdateInvoiceItemInput cambios sobre una línea.
type UpdateInvoiceItemInput struct {
	WarehouseID string
	Quantity    int
	UnitPrice   *decimal.Decimal
	Description string
	ActorID     string
}

// Create registra la línea y, si corresponde, la salida de inventario en la misma transacción.
func (uc *InvoiceItemUseCase) Create(ctx context.Context, in CreateInvoiceItemInput) (*entity.InvoiceItem, error) {
	if in.InvoiceID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemID == "" && in.ServiceID == "" && in.PartsUsedID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.InvoiceItem
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		now := time.Now().UTC()
		line := &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   in.InvoiceID,
			ItemID:      in.ItemID,
			ServiceID:   in.ServiceID,
			PartsUsedID: in.PartsUsedID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if in.PartsUsedID != "" {
			parts, err := repos.PartsUsed.GetByID(ctx, in.PartsUsedID)
			if err != nil {
				return err
			}
			if parts == nil {
				return fmt.Errorf("consumo %s: %w", in.PartsUsedID, domain.ErrNotFound)
			}
			if parts.InvoiceItemID != "" {
				return fmt.Errorf("consumo %s ya facturado: %w", parts.ID, domain.ErrConflict)
			}
			line.ItemID = parts.ItemID
			line.WarehouseID = parts.WarehouseID
		}

		price, err := uc.unitPrice(ctx, repos, line.ItemID, in.UnitPrice)
		if err != nil {
			return err
		}
		line.UnitPrice = price
		line.TotalPrice = domaininv.LineCost(price, line.Quantity)

		if line.TracksStock() {
			whID, err := uc.ledger.ResolveSourceWarehouse(ctx, repos, line.ItemID, line.WarehouseID)
			if err != nil {
				return err
			}
			line.WarehouseID = whID
		}
		if err := repos.InvoiceItems.Create(ctx, line); err != nil {
			return err
		}
		if line.PartsUsedID != "" {
			if err := repos.PartsUsed.LinkInvoiceItem(ctx, line.PartsUsedID, line.ID); err != nil {
				return err
			}
		}
		if line.TracksStock() {
			if _, err := uc.ledger.ApplyInTx(ctx, repos, sale(line, in.ActorID)); err != nil {
				return err
			}
		}
		out = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update ajusta cantidad/precio/bodega; la salida previa se revierte y se reaplica en la misma transacción.
func (uc *InvoiceItemUseCase) Update(ctx context.Context, id string, in UpdateInvoiceItemInput) (*entity.InvoiceItem, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.InvoiceItem
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		line, err := repos.InvoiceItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("línea %s: %w", id, domain.ErrNotFound)
		}
		line.Quantity = in.Quantity
		if in.UnitPrice != nil {
			line.UnitPrice = *in.UnitPrice
		}
		if in.Description != "" {
			line.Description = in.Description
		}
		if in.WarehouseID != "" && line.TracksStock() {
			line.WarehouseID = in.WarehouseID
		}
		line.TotalPrice = domaininv.LineCost(line.UnitPrice, line.Quantity)
		line.UpdatedAt = time.Now().UTC()

		if line.TracksStock() {
			next := sale(line, in.ActorID)
			if _, err := uc.ledger.ReplaceByCauseInTx(ctx, repos, next.CauseRef, &next); err != nil {
				return err
			}
		}
		if err := repos.InvoiceItems.Update(ctx, line); err != nil {
			return err
		}
		out = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete retira la línea devolviendo su salida de inventario; si venía de un consumo lo desenlaza.
func (uc *InvoiceItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		line, err := repos.InvoiceItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("línea %s: %w", id, domain.ErrNotFound)
		}
		if line.TracksStock() {
			cause := domaininv.CauseRef(domaininv.CauseInvoiceItem, line.ID)
			if _, err := uc.ledger.ReplaceByCauseInTx(ctx, repos, cause, nil); err != nil {
				return err
			}
		}
		if line.PartsUsedID != "" {
			// el consumo pudo haberse eliminado antes
			if err := repos.PartsUsed.LinkInvoiceItem(ctx, line.PartsUsedID, ""); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}
		return repos.InvoiceItems.SoftDelete(ctx, line.ID)
	})
}

func (uc *InvoiceItemUseCase) unitPrice(ctx context.Context, repos inventory.TxRepos, itemID string, requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	if itemID == "" {
		// los servicios no tienen precio de catálogo aquí
		return decimal.Zero, domain.ErrInvalidInput
	}
	item, err := repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	return item.SellingPrice, nil
}

func sale(line *entity.InvoiceItem, actorID string) inventory.MovementInput {
	return inventory.MovementInput{
		Type:            entity.MovementTypeOUT,
		ItemID:          line.ItemID,
		Quantity:        line.Quantity,
		FromWarehouseID: line.WarehouseID,
		ActorID:         actorID,
		Note:            fmt.Sprintf("Factura #%s", line.InvoiceID),
		CauseRef:        domaininv.CauseRef(domaininv.CauseInvoiceItem, line.ID),
	}
}
