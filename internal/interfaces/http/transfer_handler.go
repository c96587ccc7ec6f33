package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/counts"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/transfers"
)

// StockDocumentHandler traslados entre bodegas y conteos físicos.
type StockDocumentHandler struct {
	transfers *transfers.TransferUseCase
	counts    *counts.CountUseCase
}

// NewStockDocumentHandler construye el handler.
func NewStockDocumentHandler(transferUC *transfers.TransferUseCase, countUC *counts.CountUseCase) *StockDocumentHandler {
	return &StockDocumentHandler{transfers: transferUC, counts: countUC}
}

// CompleteTransfer godoc
// @Summary      Completar traslado
// @Description  Mueve cada línea del origen al destino. Si una línea no tiene stock no se mueve ninguna.
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.CompleteTransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id}/complete [post]
func (h *StockDocumentHandler) CompleteTransfer(c *fiber.Ctx) error {
	res, err := h.transfers.Complete(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CompleteTransferResponse{TransferID: res.TransferID, MovementIDs: nonNil(res.MovementIDs)})
}

// DeleteTransfer godoc
// @Summary      Eliminar traslado
// @Description  Si estaba completado revierte sus movimientos.
// @Tags         stock-transfers
// @Security     Bearer
// @Param        id   path  string  true  "ID del traslado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id} [delete]
func (h *StockDocumentHandler) DeleteTransfer(c *fiber.Ctx) error {
	if err := h.transfers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteCount godoc
// @Summary      Completar conteo físico
// @Description  Fija el saldo de cada línea aprobada en la cantidad contada.
// @Tags         stock-counts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CompleteCountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-counts/{id}/complete [post]
func (h *StockDocumentHandler) CompleteCount(c *fiber.Ctx) error {
	res, err := h.counts.Complete(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CompleteCountResponse{
		CountID:   res.CountID,
		Adjusted:  nonNil(res.Adjusted),
		Unchanged: nonNil(res.Unchanged),
	})
}
