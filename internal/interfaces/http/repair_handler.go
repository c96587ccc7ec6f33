package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/repair"
)

// RepairHandler consumos de repuestos en reparaciones.
type RepairHandler struct {
	parts *repair.PartsUseCase
}

// NewRepairHandler construye el handler.
func NewRepairHandler(parts *repair.PartsUseCase) *RepairHandler {
	return &RepairHandler{parts: parts}
}

// CreateParts godoc
// @Summary      Registrar repuesto usado en una reparación
// @Description  Descuenta el stock en la misma transacción. Sin warehouse_id se usa la bodega con más saldo.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        repair_id  path  string                      true  "ID de la reparación"
// @Param        body       body  dto.CreatePartsUsedRequest  true  "Repuesto y cantidad"
// @Success      201  {object}  dto.PartsUsedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{repair_id}/parts [post]
func (h *RepairHandler) CreateParts(c *fiber.Ctx) error {
	var in dto.CreatePartsUsedRequest
	if !parseBody(c, &in) {
		return nil
	}
	p, err := h.parts.Create(c.UserContext(), repair.CreatePartsInput{
		RepairID:    c.Params("repair_id"),
		ItemID:      in.ItemID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Note:        in.Note,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPartsUsedResponse(p))
}

// UpdateParts godoc
// @Summary      Modificar repuesto usado
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del consumo"
// @Param        body  body  dto.UpdatePartsUsedRequest  true  "Nueva cantidad o bodega"
// @Success      200  {object}  dto.PartsUsedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/parts/{id} [put]
func (h *RepairHandler) UpdateParts(c *fiber.Ctx) error {
	var in dto.UpdatePartsUsedRequest
	if !parseBody(c, &in) {
		return nil
	}
	p, err := h.parts.Update(c.UserContext(), c.Params("id"), repair.UpdatePartsInput{
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Note:        in.Note,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPartsUsedResponse(p))
}

// DeleteParts godoc
// @Summary      Eliminar repuesto usado (devuelve el stock)
// @Tags         repairs
// @Security     Bearer
// @Param        id  path  string  true  "ID del consumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repairs/parts/{id} [delete]
func (h *RepairHandler) DeleteParts(c *fiber.Ctx) error {
	if err := h.parts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
