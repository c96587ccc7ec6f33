//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("taller_test"),
		tcpostgres.WithUsername("taller"),
		tcpostgres.WithPassword("taller"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(dsn, logger.Nop()))

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		INSERT INTO warehouses (id, name, is_default) VALUES ('wh-a', 'Principal', TRUE), ('wh-b', 'Sucursal', FALSE);
		INSERT INTO inventory_items (id, sku, name, purchase_price, selling_price) VALUES ('item-1', 'FLT-01', 'Filtro', 10, 15);`)
	require.NoError(t, err)
	return pool
}

func newLedger(pool *pgxpool.Pool) *inventory.StockLedger {
	return inventory.NewStockLedger(postgres.NewTxRunner(pool), logger.Nop(), inventory.LedgerOptions{TxTimeout: 5 * time.Second})
}

func TestLedger_ConcurrentOutflowsNeverOversell(t *testing.T) {
	pool := setupDB(t)
	ledger := newLedger(pool)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 5, ToWarehouseID: "wh-a"})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeOUT, ItemID: "item-1", Quantity: 4, FromWarehouseID: "wh-a"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if errors.Is(err, domain.ErrInsufficientStock) {
				available, ok := domain.AvailableStock(err)
				assert.True(t, ok)
				assert.Equal(t, 1, available)
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	level, err := ledger.GetBalance(ctx, "item-1", "wh-a")
	require.NoError(t, err)
	assert.Equal(t, 1, level.Quantity)
}

func TestLedger_DuplicateCauseRejectedUntilReversed(t *testing.T) {
	pool := setupDB(t)
	ledger := newLedger(pool)
	ctx := context.Background()

	in := inventory.MovementInput{Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 3, ToWarehouseID: "wh-a", CauseRef: "purchase-order-item:po-1"}
	first, err := ledger.ApplyMovement(ctx, in)
	require.NoError(t, err)

	_, err = ledger.ApplyMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateCause)

	require.NoError(t, ledger.Reverse(ctx, first.ID))
	assert.ErrorIs(t, ledger.Reverse(ctx, first.ID), domain.ErrAlreadyReversed)

	_, err = ledger.ApplyMovement(ctx, in)
	require.NoError(t, err)

	list, err := ledger.ListMovements(ctx, repository.MovementFilter{CauseRef: in.CauseRef})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	level, err := ledger.GetBalance(ctx, "item-1", "wh-a")
	require.NoError(t, err)
	assert.Equal(t, 3, level.Quantity)
}

func TestLedger_FailedMovementLeavesNoTrace(t *testing.T) {
	pool := setupDB(t)
	ledger := newLedger(pool)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeTRANSFER, ItemID: "item-1", Quantity: 2, FromWarehouseID: "wh-a", ToWarehouseID: "wh-b"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var movements, levels int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM stock_movements`).Scan(&movements))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM stock_levels WHERE quantity > 0`).Scan(&levels))
	assert.Zero(t, movements)
	assert.Zero(t, levels)
}

func TestLedger_AlertLifecycle(t *testing.T) {
	pool := setupDB(t)
	ledger := newLedger(pool)
	ctx := context.Background()

	_, err := ledger.SetMinimum(ctx, "item-1", "wh-a", 3)
	require.NoError(t, err)
	alerts, err := ledger.ListActiveAlerts(ctx, repository.AlertFilter{ItemID: "item-1"})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeOutOfStock, alerts[0].Type)

	_, err = ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 2, ToWarehouseID: "wh-a"})
	require.NoError(t, err)
	alerts, err = ledger.ListActiveAlerts(ctx, repository.AlertFilter{ItemID: "item-1"})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertTypeLowStock, alerts[0].Type)
	assert.Equal(t, 2, alerts[0].CurrentQuantity)

	_, err = ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 5, ToWarehouseID: "wh-a"})
	require.NoError(t, err)
	alerts, err = ledger.ListActiveAlerts(ctx, repository.AlertFilter{ItemID: "item-1"})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestPool_RegistersDecimalCodec(t *testing.T) {
	pool := setupDB(t)

	item, err := postgres.NewInventoryItemRepository(pool).GetByID(context.Background(), "item-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.SellingPrice.Equal(decimal.NewFromInt(15)))
}

func TestLedger_ReverseOfTransferToNewWarehouseRetiresBalance(t *testing.T) {
	pool := setupDB(t)
	ledger := newLedger(pool)
	ctx := context.Background()

	_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 10, ToWarehouseID: "wh-a"})
	require.NoError(t, err)
	m, err := ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeTRANSFER, ItemID: "item-1", Quantity: 5, FromWarehouseID: "wh-a", ToWarehouseID: "wh-b"})
	require.NoError(t, err)

	stored, err := ledger.GetMovement(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.OpenedDestination)

	require.NoError(t, ledger.Reverse(ctx, m.ID))

	var retired bool
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT deleted_at IS NOT NULL FROM stock_levels WHERE item_id = 'item-1' AND warehouse_id = 'wh-b'`).Scan(&retired))
	assert.True(t, retired)
	alerts, err := ledger.ListActiveAlerts(ctx, repository.AlertFilter{WarehouseID: "wh-b"})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestLedger_CrossedTransfersDoNotDeadlock(t *testing.T) {
	pool := setupDB(t)
	ledger := newLedger(pool)
	ctx := context.Background()

	for _, wh := range []string{"wh-a", "wh-b"} {
		_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 50, ToWarehouseID: wh})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 40)
	for i := range errs {
		from, to := "wh-a", "wh-b"
		if i%2 == 1 {
			from, to = "wh-b", "wh-a"
		}
		wg.Add(1)
		go func(i int, from, to string) {
			defer wg.Done()
			_, errs[i] = ledger.ApplyMovement(ctx, inventory.MovementInput{
				Type: entity.MovementTypeTRANSFER, ItemID: "item-1", Quantity: 1, FromWarehouseID: from, ToWarehouseID: to,
			})
		}(i, from, to)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	a, err := ledger.GetBalance(ctx, "item-1", "wh-a")
	require.NoError(t, err)
	b, err := ledger.GetBalance(ctx, "item-1", "wh-b")
	require.NoError(t, err)
	assert.Equal(t, 100, a.Quantity+b.Quantity)
}

func TestStockMovementRepo_PrimaryKeyCollisionIsNotDuplicateCause(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewStockMovementRepository(pool)

	m := &entity.StockMovement{ID: "mv-1", Type: entity.MovementTypeIN, ItemID: "item-1", Quantity: 1,
		ToWarehouseID: "wh-a", Status: entity.MovementStatusActive, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, m))

	err := repo.Create(ctx, m)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateCause)
	assert.ErrorIs(t, err, domain.ErrStorage)

	withCause := *m
	withCause.ID, withCause.CauseRef = "mv-2", "stock-count-item:c-1"
	require.NoError(t, repo.Create(ctx, &withCause))
	withCause.ID = "mv-3"
	assert.ErrorIs(t, repo.Create(ctx, &withCause), domain.ErrDuplicateCause)
}
