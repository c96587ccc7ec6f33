package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-api/internal/domain/inventory"
)

func TestLineCost(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		quantity int
		want     string
	}{
		{"entero", "25000", 3, "75000"},
		{"redondea a centavos", "10.005", 1, "10.01"},
		{"decimales", "1250.50", 2, "2501"},
		{"cantidad cero", "100", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.LineCost(decimal.RequireFromString(tt.unit), tt.quantity)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
