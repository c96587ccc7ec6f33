package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/purchasing"
)

// PurchaseOrderHandler recepción de pedidos de compra.
type PurchaseOrderHandler struct {
	receive *purchasing.ReceiveUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(receive *purchasing.ReceiveUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{receive: receive}
}

// Receive godoc
// @Summary      Recibir pedido de compra
// @Description  Genera una entrada por cada línea pendiente. Repetir la llamada no duplica stock.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ReceivePurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	res, err := h.receive.Receive(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReceivePurchaseOrderResponse{
		PurchaseOrderID: res.PurchaseOrderID,
		Received:        nonNil(res.Received),
		Skipped:         nonNil(res.Skipped),
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
