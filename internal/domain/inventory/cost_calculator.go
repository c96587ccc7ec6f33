package inventory

import "github.com/shopspring/decimal"

// LineCost total de una línea de consumo o factura: unitario * cantidad, redondeado a centavos.
func LineCost(unit decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
