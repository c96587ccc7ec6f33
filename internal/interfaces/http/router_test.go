package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/billing"
	"github.com/jhoicas/taller-api/internal/application/counts"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/taller-api/internal/application/purchasing"
	"github.com/jhoicas/taller-api/internal/application/repair"
	"github.com/jhoicas/taller-api/internal/application/transfers"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	apphttp "github.com/jhoicas/taller-api/internal/interfaces/http"
	"github.com/jhoicas/taller-api/pkg/logger"
)

const (
	itemID = "item-1"
	whMain = "wh-main"
	whAux  = "wh-aux"
)

func buildAPI(t *testing.T) (*fiber.App, *inventorytest.Store) {
	t.Helper()
	store := inventorytest.New()
	store.AddItem(itemID, decimal.NewFromInt(40000))
	store.AddWarehouse(whMain, true)
	store.AddWarehouse(whAux, false)

	log := logger.Nop()
	ledger := inventory.NewStockLedger(store, log, inventory.LedgerOptions{})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC:  usecase.NewWarehouseUseCase(store.Warehouses()),
		Ledger:       ledger,
		Adjustments:  inventory.NewAdjustmentUseCase(ledger),
		PartsUC:      repair.NewPartsUseCase(ledger, store.InvoiceItems(), log),
		InvoiceItems: billing.NewInvoiceItemUseCase(ledger),
		ReceivePO:    purchasing.NewReceiveUseCase(ledger, log),
		TransferUC:   transfers.NewTransferUseCase(ledger, log),
		CountUC:      counts.NewCountUseCase(ledger, log),
		JWTSecret:    testJWTSecret,
	})
	return app, store
}

// call envía una petición con token del rol indicado y decodifica el cuerpo JSON (si hay).
func call(t *testing.T, app *fiber.App, method, path, role string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestRouter_RegisterMovement_Created(t *testing.T) {
	app, store := buildAPI(t)

	status, body := call(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleBodeguero, map[string]any{
		"type": "IN", "item_id": itemID, "quantity": 8, "to_warehouse_id": whMain,
	})

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "IN", body["type"])
	assert.Equal(t, testUserID, body["actor_id"])
	level, ok := store.Level(itemID, whMain)
	require.True(t, ok)
	assert.Equal(t, 8, level.Quantity)
}

func TestRouter_RegisterMovement_InsufficientStockIncludesAvailable(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whMain, 2, 0)

	status, body := call(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleAdmin, map[string]any{
		"type": "OUT", "item_id": itemID, "quantity": 5, "from_warehouse_id": whMain,
	})

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.EqualValues(t, 2, body["available"])
}

func TestRouter_RegisterMovement_ValidationErrors(t *testing.T) {
	app, _ := buildAPI(t)

	status, body := call(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleAdmin, map[string]any{
		"type": "LOAN", "item_id": itemID, "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "type")

	status, body = call(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleAdmin, map[string]any{
		"type": "TRANSFER", "item_id": itemID, "quantity": 1, "from_warehouse_id": whMain, "to_warehouse_id": whMain,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_LOCATION", body["code"])
}

func TestRouter_RegisterMovement_RoleRestrictions(t *testing.T) {
	app, _ := buildAPI(t)
	payload := map[string]any{"type": "IN", "item_id": itemID, "quantity": 1, "to_warehouse_id": whMain}

	status, body := call(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleCajero, payload)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = call(t, app, http.MethodPost, "/api/inventory/movements", "", payload)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_EditAndDeleteMovement(t *testing.T) {
	app, store := buildAPI(t)

	_, created := call(t, app, http.MethodPost, "/api/inventory/movements", entity.RoleAdmin, map[string]any{
		"type": "IN", "item_id": itemID, "quantity": 10, "to_warehouse_id": whMain,
	})
	id := created["id"].(string)

	status, edited := call(t, app, http.MethodPut, "/api/inventory/movements/"+id, entity.RoleAdmin, map[string]any{
		"type": "IN", "item_id": itemID, "quantity": 4, "to_warehouse_id": whAux,
	})
	require.Equal(t, http.StatusOK, status)
	mainLevel, _ := store.Level(itemID, whMain)
	aux, _ := store.Level(itemID, whAux)
	assert.Equal(t, 0, mainLevel.Quantity)
	assert.Equal(t, 4, aux.Quantity)

	status, _ = call(t, app, http.MethodDelete, "/api/inventory/movements/"+edited["id"].(string), entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	aux, _ = store.Level(itemID, whAux)
	assert.Equal(t, 0, aux.Quantity)

	status, body := call(t, app, http.MethodDelete, "/api/inventory/movements/"+id, entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_REVERSED", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/movements/"+id, entity.RoleCajero, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.MovementStatusSuperseded, body["status"])
}

func TestRouter_AdjustSetAndBalance(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whMain, 3, 0)

	status, body := call(t, app, http.MethodPost, "/api/inventory/items/"+itemID+"/adjust", entity.RoleBodeguero, map[string]any{
		"warehouse_id": whMain, "mode": "set", "quantity": 7,
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "IN", body["type"])
	assert.EqualValues(t, 4, body["quantity"])

	status, _ = call(t, app, http.MethodPost, "/api/inventory/items/"+itemID+"/adjust", entity.RoleBodeguero, map[string]any{
		"warehouse_id": whMain, "mode": "set", "quantity": 7,
	})
	assert.Equal(t, http.StatusNoContent, status)

	status, body = call(t, app, http.MethodGet, "/api/inventory/stock/"+itemID+"/"+whMain, entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 7, body["quantity"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/stock/no-existe/"+whMain, entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestRouter_SetMinimumRaisesAlert(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whMain, 2, 0)

	status, body := call(t, app, http.MethodPut, "/api/inventory/stock/"+itemID+"/"+whMain+"/minimum", entity.RoleAdmin, map[string]any{
		"min_level": 5,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["is_low"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/alerts?item_id="+itemID, entity.RoleTecnico, nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	alert := items[0].(map[string]any)
	assert.Equal(t, entity.AlertTypeLowStock, alert["alert_type"])
	assert.EqualValues(t, 2, alert["current_quantity"])
	assert.EqualValues(t, 5, alert["threshold"])

	status, _ = call(t, app, http.MethodPut, "/api/inventory/stock/"+itemID+"/"+whMain+"/minimum", entity.RoleAdmin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_PartsLifecycle(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whMain, 5, 0)

	status, body := call(t, app, http.MethodPost, "/api/repairs/rep-1/parts", entity.RoleTecnico, map[string]any{
		"item_id": itemID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, whMain, body["warehouse_id"])
	partsID := body["id"].(string)
	level, _ := store.Level(itemID, whMain)
	assert.Equal(t, 3, level.Quantity)

	status, body = call(t, app, http.MethodPut, "/api/repairs/parts/"+partsID, entity.RoleTecnico, map[string]any{
		"quantity": 9,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.EqualValues(t, 5, body["available"])

	status, _ = call(t, app, http.MethodDelete, "/api/repairs/parts/"+partsID, entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusNoContent, status)
	level, _ = store.Level(itemID, whMain)
	assert.Equal(t, 5, level.Quantity)

	status, _ = call(t, app, http.MethodPost, "/api/repairs/rep-1/parts", entity.RoleCajero, map[string]any{
		"item_id": itemID, "quantity": 1,
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRouter_InvoiceItemLifecycle(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whMain, 4, 0)

	status, body := call(t, app, http.MethodPost, "/api/invoices/inv-1/items", entity.RoleCajero, map[string]any{
		"item_id": itemID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "120000", body["total_price"])
	lineID := body["id"].(string)
	level, _ := store.Level(itemID, whMain)
	assert.Equal(t, 1, level.Quantity)

	status, _ = call(t, app, http.MethodPut, "/api/invoices/items/"+lineID, entity.RoleCajero, map[string]any{
		"quantity": 1,
	})
	require.Equal(t, http.StatusOK, status)
	level, _ = store.Level(itemID, whMain)
	assert.Equal(t, 3, level.Quantity)

	status, _ = call(t, app, http.MethodDelete, "/api/invoices/items/"+lineID, entity.RoleCajero, nil)
	assert.Equal(t, http.StatusNoContent, status)
	level, _ = store.Level(itemID, whMain)
	assert.Equal(t, 4, level.Quantity)

	status, body = call(t, app, http.MethodPost, "/api/invoices/inv-1/items", entity.RoleCajero, map[string]any{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestRouter_ReceivePurchaseOrderIsIdempotent(t *testing.T) {
	app, store := buildAPI(t)
	store.AddPurchaseOrderItem(entity.PurchaseOrderItem{
		ID: "poi-1", PurchaseOrderID: "po-1", ItemID: itemID, WarehouseID: whAux, Quantity: 6, UnitCost: decimal.NewFromInt(30000),
	})

	status, body := call(t, app, http.MethodPost, "/api/purchase-orders/po-1/receive", entity.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"poi-1"}, body["received"])

	status, body = call(t, app, http.MethodPost, "/api/purchase-orders/po-1/receive", entity.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["received"])
	assert.Equal(t, []any{"poi-1"}, body["skipped"])

	level, _ := store.Level(itemID, whAux)
	assert.Equal(t, 6, level.Quantity)

	status, _ = call(t, app, http.MethodPost, "/api/purchase-orders/po-404/receive", entity.RoleBodeguero, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_TransferCompleteAndDelete(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whMain, 8, 0)
	store.AddTransfer(entity.StockTransfer{ID: "tr-1", FromWarehouseID: whMain, ToWarehouseID: whAux},
		entity.StockTransferItem{ID: "tri-1", ItemID: itemID, RequestedQuantity: 3},
	)

	status, _ := call(t, app, http.MethodPost, "/api/stock-transfers/tr-1/complete", entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, app, http.MethodPost, "/api/stock-transfers/tr-1/complete", entity.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "tr-1", body["transfer_id"])
	assert.Len(t, body["movement_ids"], 1)
	aux, _ := store.Level(itemID, whAux)
	assert.Equal(t, 3, aux.Quantity)

	status, body = call(t, app, http.MethodPost, "/api/stock-transfers/tr-1/complete", entity.RoleBodeguero, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	status, _ = call(t, app, http.MethodDelete, "/api/stock-transfers/tr-1", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusNoContent, status)
	origin, _ := store.Level(itemID, whMain)
	assert.Equal(t, 8, origin.Quantity)

	status, _ = call(t, app, http.MethodDelete, "/api/stock-transfers/tr-1", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_CountComplete(t *testing.T) {
	app, store := buildAPI(t)
	store.SetLevel(itemID, whAux, 5, 0)
	store.AddCount(entity.StockCount{ID: "ct-1", WarehouseID: whAux},
		entity.StockCountItem{ID: "ci-1", ItemID: itemID, CountedQuantity: 2, Status: entity.CountItemStatusAdjusted},
	)

	status, body := call(t, app, http.MethodPost, "/api/stock-counts/ct-1/complete", entity.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"ci-1"}, body["adjusted"])
	assert.Equal(t, []any{}, body["unchanged"])
	level, _ := store.Level(itemID, whAux)
	assert.Equal(t, 2, level.Quantity)

	status, _ = call(t, app, http.MethodPost, "/api/stock-counts/ct-404/complete", entity.RoleBodeguero, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_Warehouses(t *testing.T) {
	app, _ := buildAPI(t)

	status, body := call(t, app, http.MethodPost, "/api/warehouses", entity.RoleAdmin, map[string]any{"name": "Taller Norte"})
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)

	status, body = call(t, app, http.MethodGet, "/api/warehouses/"+id, entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Taller Norte", body["name"])

	status, body = call(t, app, http.MethodPost, "/api/warehouses", entity.RoleAdmin, map[string]any{"name": "Otra", "is_default": true})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/warehouses?limit=2", entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 2)

	status, _ = call(t, app, http.MethodGet, "/api/warehouses/no-existe", entity.RoleTecnico, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
