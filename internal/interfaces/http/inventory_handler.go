package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de movimientos, saldos y alertas (protegido).
type InventoryHandler struct {
	ledger      *inventory.StockLedger
	adjustments *inventory.AdjustmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger, adjustments *inventory.AdjustmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, adjustments: adjustments}
}

func movementInput(in dto.RegisterMovementRequest, actorID string) inventory.MovementInput {
	return inventory.MovementInput{
		Type:            in.Type,
		ItemID:          in.ItemID,
		Quantity:        in.Quantity,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ActorID:         actorID,
		Note:            in.Note,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, item_id, quantity y bodegas según el tipo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	m, err := h.adjustments.Register(c.UserContext(), movementInput(in, GetUserID(c)))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// EditMovement godoc
// @Summary      Editar movimiento manual (revierte y vuelve a aplicar)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del movimiento"
// @Param        body  body  dto.RegisterMovementRequest  true  "Nuevo movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [put]
func (h *InventoryHandler) EditMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	m, err := h.adjustments.Edit(c.UserContext(), c.Params("id"), movementInput(in, GetUserID(c)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// DeleteMovement godoc
// @Summary      Revertir movimiento manual
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.adjustments.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.ledger.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  false  "Repuesto"
// @Param        warehouse_id  query  string  false  "Bodega (origen o destino)"
// @Param        status        query  string  false  "active | superseded"
// @Param        cause_ref     query  string  false  "Causa"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q := dto.MovementQuery{
		ItemID:      c.Query("item_id"),
		WarehouseID: c.Query("warehouse_id"),
		Status:      c.Query("status"),
		CauseRef:    c.Query("cause_ref"),
		PageRequest: pageFromQuery(c),
	}
	if !validateStruct(c, &q) {
		return nil
	}
	q.DefaultPage()
	list, err := h.ledger.ListMovements(c.UserContext(), repository.MovementFilter{
		ItemID:      q.ItemID,
		WarehouseID: q.WarehouseID,
		Status:      q.Status,
		CauseRef:    q.CauseRef,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}})
}

// AdjustStock godoc
// @Summary      Ajuste directo de stock (add, remove, set)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        item_id  path  string                  true  "ID del repuesto"
// @Param        body     body  dto.AdjustStockRequest  true  "Bodega, modo y cantidad"
// @Success      201  {object}  dto.MovementResponse
// @Success      204  "set sin cambios"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{item_id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	m, err := h.adjustments.Adjust(c.UserContext(), inventory.AdjustInput{
		ItemID:      c.Params("item_id"),
		WarehouseID: in.WarehouseID,
		Mode:        in.Mode,
		Quantity:    in.Quantity,
		ActorID:     GetUserID(c),
		Note:        in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	if m == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// GetBalance godoc
// @Summary      Saldo de un repuesto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id       path  string  true  "ID del repuesto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{item_id}/{warehouse_id} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	level, err := h.ledger.GetBalance(c.UserContext(), c.Params("item_id"), c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockLevelResponse(level))
}

// SetMinimum godoc
// @Summary      Fijar stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        item_id       path  string                 true  "ID del repuesto"
// @Param        warehouse_id  path  string                 true  "ID de la bodega"
// @Param        body          body  dto.SetMinimumRequest  true  "Nuevo mínimo"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{item_id}/{warehouse_id}/minimum [put]
func (h *InventoryHandler) SetMinimum(c *fiber.Ctx) error {
	var in dto.SetMinimumRequest
	if !parseBody(c, &in) {
		return nil
	}
	level, err := h.ledger.SetMinimum(c.UserContext(), c.Params("item_id"), c.Params("warehouse_id"), *in.MinLevel)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockLevelResponse(level))
}

// RetireBalance godoc
// @Summary      Retirar un saldo en cero
// @Tags         inventory
// @Security     Bearer
// @Param        item_id       path  string  true  "ID del repuesto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{item_id}/{warehouse_id} [delete]
func (h *InventoryHandler) RetireBalance(c *fiber.Ctx) error {
	if err := h.ledger.RetireBalance(c.UserContext(), c.Params("item_id"), c.Params("warehouse_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAlerts godoc
// @Summary      Alertas de stock activas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  false  "Repuesto"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        type          query  string  false  "out_of_stock | low_stock"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	q := dto.AlertQuery{
		ItemID:      c.Query("item_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
		PageRequest: pageFromQuery(c),
	}
	if !validateStruct(c, &q) {
		return nil
	}
	q.DefaultPage()
	list, err := h.ledger.ListActiveAlerts(c.UserContext(), repository.AlertFilter{
		ItemID:      q.ItemID,
		WarehouseID: q.WarehouseID,
		Type:        q.Type,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockAlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ToStockAlertResponse(a))
	}
	return c.JSON(dto.AlertListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}})
}
