package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("bodega x: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrInvalidLocationPair, fiber.StatusBadRequest, "INVALID_LOCATION"},
		{domain.ErrDuplicateCause, fiber.StatusConflict, "DUPLICATE_CAUSE"},
		{domain.ErrAlreadyReversed, fiber.StatusConflict, "ALREADY_REVERSED"},
		{fmt.Errorf("traslado t-1 ya completado: %w", domain.ErrConflict), fiber.StatusConflict, "CONFLICT"},
		{fmt.Errorf("insert: %w: %w", domain.ErrStorage, errors.New("conn reset")), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := mapError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
	}

	status, body := mapError(&domain.InsufficientStockError{ItemID: "i", WarehouseID: "w", Requested: 4, Available: 1})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Available)
	assert.Equal(t, 1, *body.Available)

	_, body = mapError(fmt.Errorf("pool: %w", domain.ErrStorage))
	assert.Equal(t, "error interno", body.Message, "los errores internos no filtran detalles")
}
