package counts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/taller-api/internal/application/counts"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/pkg/logger"
)

func setup(t *testing.T) (*counts.CountUseCase, *inventorytest.Store) {
	t.Helper()
	store := inventorytest.New()
	store.AddItem("flex", decimal.NewFromInt(8000))
	store.AddItem("tapa", decimal.NewFromInt(15000))
	store.AddItem("lente", decimal.NewFromInt(30000))
	store.AddItem("bateria", decimal.NewFromInt(45000))
	store.AddWarehouse("principal", true)
	ledger := inventory.NewStockLedger(store, logger.Nop(), inventory.LedgerOptions{})
	return counts.NewCountUseCase(ledger, logger.Nop()), store
}

func TestComplete_FijaElSaldoContado(t *testing.T) {
	uc, store := setup(t)
	store.SetLevel("flex", "principal", 7, 0)
	store.SetLevel("lente", "principal", 3, 0)
	store.SetLevel("bateria", "principal", 2, 0)
	store.AddCount(entity.StockCount{ID: "CT-1", WarehouseID: "principal"},
		entity.StockCountItem{ID: "ci-1", ItemID: "flex", CountedQuantity: 4, Status: entity.CountItemStatusAdjusted},
		entity.StockCountItem{ID: "ci-2", ItemID: "tapa", CountedQuantity: 5, Status: entity.CountItemStatusAdjusted},
		entity.StockCountItem{ID: "ci-3", ItemID: "lente", CountedQuantity: 3, Status: entity.CountItemStatusAdjusted},
		entity.StockCountItem{ID: "ci-4", ItemID: "bateria", CountedQuantity: 9, Status: entity.CountItemStatusPending},
	)

	res, err := uc.Complete(context.Background(), "CT-1", "bod-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ci-1", "ci-2"}, res.Adjusted)
	assert.ElementsMatch(t, []string{"ci-3", "ci-4"}, res.Unchanged)

	flex, _ := store.Level("flex", "principal")
	tapa, _ := store.Level("tapa", "principal")
	bateria, _ := store.Level("bateria", "principal")
	assert.Equal(t, 4, flex.Quantity)
	assert.Equal(t, 5, tapa.Quantity)
	assert.Equal(t, 2, bateria.Quantity, "las líneas sin aprobar no mueven stock")

	out := store.ActiveMovementsByCause("stock-count-item:ci-1")
	require.Len(t, out, 1)
	assert.Equal(t, entity.MovementTypeOUT, out[0].Type)
	assert.Equal(t, 3, out[0].Quantity)
	assert.Equal(t, "Ajuste de inventario: 7 -> 4", out[0].Note)
	assert.Equal(t, "bod-1", out[0].ActorID)

	in := store.ActiveMovementsByCause("stock-count-item:ci-2")
	require.Len(t, in, 1)
	assert.Equal(t, entity.MovementTypeIN, in[0].Type)
	assert.Empty(t, store.ActiveMovementsByCause("stock-count-item:ci-3"))

	c, _ := store.Count("CT-1")
	assert.Equal(t, entity.CountStatusCompleted, c.Status)
}

func TestComplete_ConteoCompletadoEsConflicto(t *testing.T) {
	uc, store := setup(t)
	store.SetLevel("flex", "principal", 7, 0)
	store.AddCount(entity.StockCount{ID: "CT-2", WarehouseID: "principal"},
		entity.StockCountItem{ID: "ci-1", ItemID: "flex", CountedQuantity: 4, Status: entity.CountItemStatusAdjusted},
	)
	_, err := uc.Complete(context.Background(), "CT-2", "bod-1")
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), "CT-2", "bod-1")
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Len(t, store.Movements(), 1)
}

func TestComplete_ConteoInexistente(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Complete(context.Background(), "CT-x", "bod-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = uc.Complete(context.Background(), "", "bod-1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestComplete_CantidadNegativaRevierteTodo(t *testing.T) {
	uc, store := setup(t)
	store.SetLevel("flex", "principal", 7, 0)
	store.AddCount(entity.StockCount{ID: "CT-3", WarehouseID: "principal"},
		entity.StockCountItem{ID: "ci-1", ItemID: "flex", CountedQuantity: 4, Status: entity.CountItemStatusAdjusted},
		entity.StockCountItem{ID: "ci-2", ItemID: "tapa", CountedQuantity: -1, Status: entity.CountItemStatusAdjusted},
	)

	_, err := uc.Complete(context.Background(), "CT-3", "bod-1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	flex, _ := store.Level("flex", "principal")
	assert.Equal(t, 7, flex.Quantity)
	c, _ := store.Count("CT-3")
	assert.Equal(t, entity.CountStatusInProgress, c.Status)
}
