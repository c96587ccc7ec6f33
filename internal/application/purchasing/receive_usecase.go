package purchasing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/taller-api/internal/domain/inventory"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// ReceiveUseCase recepción de pedidos de compra: una entrada (IN) por línea pendiente.
type ReceiveUseCase struct {
	ledger *inventory.StockLedger
	log    *logger.Logger
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(ledger *inventory.StockLedger, log *logger.Logger) *ReceiveUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiveUseCase{ledger: ledger, log: log.Component("purchase_receive")}
}

// ReceiveResult líneas recibidas y omitidas (ya recibidas o reintento).
type ReceiveResult struct {
	PurchaseOrderID string
	Received        []string
	Skipped         []string
}

// Receive ingresa al inventario todas las líneas pendientes del pedido en una transacción.
// Una línea que ya tiene su entrada activa se omite, de modo que reintentar la recepción es inocuo.
func (uc *ReceiveUseCase) Receive(ctx context.Context, purchaseOrderID, actorID string) (*ReceiveResult, error) {
	if purchaseOrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	res := &ReceiveResult{PurchaseOrderID: purchaseOrderID}
	err := uc.ledger.WithinTx(ctx, func(repos inventory.TxRepos) error {
		res.Received, res.Skipped = nil, nil
		items, err := repos.PurchaseOrders.ListItems(ctx, purchaseOrderID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("pedido %s: %w", purchaseOrderID, domain.ErrNotFound)
		}
		for _, it := range items {
			pending := it.Quantity - it.ReceivedQuantity
			if pending <= 0 {
				res.Skipped = append(res.Skipped, it.ID)
				continue
			}
			whID, err := uc.ledger.ResolveSourceWarehouse(ctx, repos, it.ItemID, it.WarehouseID)
			if err != nil {
				return err
			}
			_, err = uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
				Type:          entity.MovementTypeIN,
				ItemID:        it.ItemID,
				Quantity:      pending,
				ToWarehouseID: whID,
				ActorID:       actorID,
				Note:          fmt.Sprintf("Recepción pedido de compra #%s", purchaseOrderID),
				CauseRef:      domaininv.CauseRef(domaininv.CausePurchaseOrderItem, it.ID),
			})
			if errors.Is(err, domain.ErrDuplicateCause) {
				uc.log.Info().Str("purchase_order_item_id", it.ID).Msg("línea ya ingresada, se omite")
				res.Skipped = append(res.Skipped, it.ID)
				if err := repos.PurchaseOrders.SetReceived(ctx, it.ID, it.Quantity); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := repos.PurchaseOrders.SetReceived(ctx, it.ID, it.Quantity); err != nil {
				return err
			}
			res.Received = append(res.Received, it.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
