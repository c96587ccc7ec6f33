package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
)

// respondError traduce errores de dominio a HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		body := dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"}
		if available, ok := domain.AvailableStock(err); ok {
			body.Available = &available
		}
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrInvalidLocationPair):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_LOCATION", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicateCause):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE_CAUSE", Message: "la causa ya tiene un movimiento activo"}
	case errors.Is(err, domain.ErrAlreadyReversed):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_REVERSED", Message: "el movimiento ya fue revertido"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}
