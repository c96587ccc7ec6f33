package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/billing"
	"github.com/jhoicas/taller-api/internal/application/dto"
)

// InvoiceHandler líneas de factura que mueven inventario.
type InvoiceHandler struct {
	items *billing.InvoiceItemUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(items *billing.InvoiceItemUseCase) *InvoiceHandler {
	return &InvoiceHandler{items: items}
}

// CreateItem godoc
// @Summary      Agregar línea a una factura
// @Description  Una línea con item_id (sin parts_used_id) descuenta stock. Las líneas desde un consumo o de servicio no.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        invoice_id  path  string                        true  "ID de la factura"
// @Param        body        body  dto.CreateInvoiceItemRequest  true  "Línea"
// @Success      201  {object}  dto.InvoiceItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{invoice_id}/items [post]
func (h *InvoiceHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateInvoiceItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	line, err := h.items.Create(c.UserContext(), billing.CreateInvoiceItemInput{
		InvoiceID:   c.Params("invoice_id"),
		ItemID:      in.ItemID,
		ServiceID:   in.ServiceID,
		PartsUsedID: in.PartsUsedID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Description: in.Description,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInvoiceItemResponse(line))
}

// UpdateItem godoc
// @Summary      Modificar línea de factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la línea"
// @Param        body  body  dto.UpdateInvoiceItemRequest  true  "Cantidad, precio o bodega"
// @Success      200  {object}  dto.InvoiceItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/items/{id} [put]
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceItemRequest
	if !parseBody(c, &in) {
		return nil
	}
	line, err := h.items.Update(c.UserContext(), c.Params("id"), billing.UpdateInvoiceItemInput{
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Description: in.Description,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToInvoiceItemResponse(line))
}

// DeleteItem godoc
// @Summary      Eliminar línea de factura
// @Tags         invoices
// @Security     Bearer
// @Param        id  path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/items/{id} [delete]
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
