package inventory

import "github.com/shopspring/decimal"

// UnitLaborCost costo de mano de obra amortizado por unidad (promedio histórico, no por lote).
// CostoMO = (Σ horas × tarifa) / Σ unidades producidas. Devuelve 0 si alguna suma es 0.
func UnitLaborCost(totalHours, hourlyRate decimal.Decimal, unitsProduced int64) decimal.Decimal {
	if unitsProduced <= 0 || !totalHours.IsPositive() {
		return decimal.Zero
	}
	return totalHours.Mul(hourlyRate).Div(decimal.NewFromInt(unitsProduced))
}
