package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/taller-api/internal/application/purchasing"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/pkg/logger"
)

func setup(t *testing.T) (*purchasing.ReceiveUseCase, *inventory.StockLedger, *inventorytest.Store) {
	t.Helper()
	store := inventorytest.New()
	store.AddItem("flex", decimal.NewFromInt(8000))
	store.AddItem("tapa", decimal.NewFromInt(15000))
	store.AddWarehouse("principal", true)
	store.AddWarehouse("sucursal", false)
	ledger := inventory.NewStockLedger(store, logger.Nop(), inventory.LedgerOptions{})
	return purchasing.NewReceiveUseCase(ledger, logger.Nop()), ledger, store
}

func TestReceive_IngresaLineasPendientesYResuelveAlerta(t *testing.T) {
	ctx := context.Background()
	uc, ledger, store := setup(t)
	store.SetLevel("flex", "principal", 1, 3)
	_, err := ledger.SetMinimum(ctx, "flex", "principal", 3)
	require.NoError(t, err)
	require.Len(t, store.ActiveAlerts("flex", "principal"), 1)

	store.AddPurchaseOrderItem(entity.PurchaseOrderItem{ID: "poi-1", PurchaseOrderID: "PO-1", ItemID: "flex", WarehouseID: "principal", Quantity: 10})
	store.AddPurchaseOrderItem(entity.PurchaseOrderItem{ID: "poi-2", PurchaseOrderID: "PO-1", ItemID: "tapa", WarehouseID: "sucursal", Quantity: 4, ReceivedQuantity: 1})

	res, err := uc.Receive(ctx, "PO-1", "bod-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"poi-1", "poi-2"}, res.Received)

	flex, _ := store.Level("flex", "principal")
	tapa, _ := store.Level("tapa", "sucursal")
	assert.Equal(t, 11, flex.Quantity)
	assert.Equal(t, 3, tapa.Quantity)
	assert.Empty(t, store.ActiveAlerts("flex", "principal"))

	poi, _ := store.PurchaseOrderItem("poi-2")
	assert.Equal(t, 4, poi.ReceivedQuantity)
}

func TestReceive_ReintentoEsInocuo(t *testing.T) {
	ctx := context.Background()
	uc, _, store := setup(t)
	store.AddPurchaseOrderItem(entity.PurchaseOrderItem{ID: "poi-1", PurchaseOrderID: "PO-2", ItemID: "flex", WarehouseID: "principal", Quantity: 5})

	_, err := uc.Receive(ctx, "PO-2", "bod-1")
	require.NoError(t, err)

	res, err := uc.Receive(ctx, "PO-2", "bod-1")
	require.NoError(t, err)
	assert.Empty(t, res.Received)
	assert.Equal(t, []string{"poi-1"}, res.Skipped)

	lvl, _ := store.Level("flex", "principal")
	assert.Equal(t, 5, lvl.Quantity)
	assert.Len(t, store.Movements(), 1)
}

func TestReceive_PedidoInexistente(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Receive(context.Background(), "PO-404", "bod-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
