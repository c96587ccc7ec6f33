package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/billing"
	"github.com/jhoicas/taller-api/internal/application/counts"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/purchasing"
	"github.com/jhoicas/taller-api/internal/application/repair"
	"github.com/jhoicas/taller-api/internal/application/transfers"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC  *usecase.WarehouseUseCase
	Ledger       *inventory.StockLedger
	Adjustments  *inventory.AdjustmentUseCase
	PartsUC      *repair.PartsUseCase
	InvoiceItems *billing.InvoiceItemUseCase
	ReceivePO    *purchasing.ReceiveUseCase
	TransferUC   *transfers.TransferUseCase
	CountUC      *counts.CountUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stockWriters := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Inventory: ledger, saldos y alertas
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Adjustments)
	invGroup.Post("/movements", stockWriters, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Put("/movements/:id", stockWriters, inventoryHandler.EditMovement)
	invGroup.Delete("/movements/:id", stockWriters, inventoryHandler.DeleteMovement)
	invGroup.Post("/items/:item_id/adjust", stockWriters, inventoryHandler.AdjustStock)
	invGroup.Get("/stock/:item_id/:warehouse_id", inventoryHandler.GetBalance)
	invGroup.Put("/stock/:item_id/:warehouse_id/minimum", stockWriters, inventoryHandler.SetMinimum)
	invGroup.Delete("/stock/:item_id/:warehouse_id", stockWriters, inventoryHandler.RetireBalance)
	invGroup.Get("/alerts", inventoryHandler.ListAlerts)

	// Repairs: consumo de repuestos
	repairs := protected.Group("/repairs", RequireRole(entity.RoleAdmin, entity.RoleTecnico, entity.RoleBodeguero))
	repairHandler := NewRepairHandler(deps.PartsUC)
	repairs.Post("/:repair_id/parts", repairHandler.CreateParts)
	repairs.Put("/parts/:id", repairHandler.UpdateParts)
	repairs.Delete("/parts/:id", repairHandler.DeleteParts)

	// Invoices: líneas de factura
	invoices := protected.Group("/invoices", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceItems)
	invoices.Post("/:invoice_id/items", invoiceHandler.CreateItem)
	invoices.Put("/items/:id", invoiceHandler.UpdateItem)
	invoices.Delete("/items/:id", invoiceHandler.DeleteItem)

	// Purchase orders
	purchaseOrders := protected.Group("/purchase-orders", stockWriters)
	poHandler := NewPurchaseOrderHandler(deps.ReceivePO)
	purchaseOrders.Post("/:id/receive", poHandler.Receive)

	// Traslados y conteos físicos
	docHandler := NewStockDocumentHandler(deps.TransferUC, deps.CountUC)
	stockTransfers := protected.Group("/stock-transfers", stockWriters)
	stockTransfers.Post("/:id/complete", docHandler.CompleteTransfer)
	stockTransfers.Delete("/:id", docHandler.DeleteTransfer)
	stockCounts := protected.Group("/stock-counts", stockWriters)
	stockCounts.Post("/:id/complete", docHandler.CompleteCount)
}
