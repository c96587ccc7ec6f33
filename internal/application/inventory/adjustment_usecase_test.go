package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func TestAdjust_AddYRemove(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)
	uc := inventory.NewAdjustmentUseCase(ledger)

	m, err := uc.Adjust(ctx, inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeAdd, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	assert.Equal(t, 7, quantity(t, store, whA))

	m, err = uc.Adjust(ctx, inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeRemove, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, m.Type)
	assert.Equal(t, 5, quantity(t, store, whA))

	_, err = uc.Adjust(ctx, inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeRemove, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAdjust_SetTraduceDiferencia(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)
	uc := inventory.NewAdjustmentUseCase(ledger)
	store.SetLevel(item1, whA, 10, 2)

	m, err := uc.Adjust(ctx, inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeSet, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, m.Type)
	assert.Equal(t, 6, m.Quantity)
	assert.Equal(t, "Ajuste de inventario: 10 -> 4", m.Note)
	assert.Equal(t, 4, quantity(t, store, whA))

	m, err = uc.Adjust(ctx, inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeSet, Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	assert.Equal(t, 5, m.Quantity)

	m, err = uc.Adjust(ctx, inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeSet, Quantity: 9})
	require.NoError(t, err)
	assert.Nil(t, m, "sin diferencia no hay movimiento")
	assert.Len(t, store.Movements(), 2)
}

func TestAdjust_ModoInvalido(t *testing.T) {
	ledger, _ := newLedger(t)
	uc := inventory.NewAdjustmentUseCase(ledger)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: "multiply", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(context.Background(), inventory.AdjustInput{ItemID: item1, WarehouseID: whA, Mode: inventory.AdjustModeSet, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustment_RegisterIgnoraCausaYSeEditaLibremente(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)
	uc := inventory.NewAdjustmentUseCase(ledger)
	store.SetLevel(item1, whA, 10, 0)

	mv := out(3, whA)
	mv.CauseRef = "invoice-item:x"
	m, err := uc.Register(ctx, mv)
	require.NoError(t, err)
	assert.Empty(t, m.CauseRef)

	edited, err := uc.Edit(ctx, m.ID, out(5, whA))
	require.NoError(t, err)
	assert.Equal(t, 5, quantity(t, store, whA))

	require.NoError(t, uc.Delete(ctx, edited.ID))
	assert.Equal(t, 10, quantity(t, store, whA))
}

func TestAdjustment_MovimientoConCausaNoSeEditaDirecto(t *testing.T) {
	ctx := context.Background()
	ledger, store := newLedger(t)
	uc := inventory.NewAdjustmentUseCase(ledger)
	store.SetLevel(item1, whA, 10, 0)

	mv := out(3, whA)
	mv.CauseRef = "parts-used:p-1"
	m, err := ledger.ApplyMovement(ctx, mv)
	require.NoError(t, err)

	_, err = uc.Edit(ctx, m.ID, out(1, whA))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, m.ID), domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, "no-existe"), domain.ErrNotFound)
	assert.Equal(t, 7, quantity(t, store, whA))
}
