package inventory

import (
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UnitMaterialCost costo de materiales de una unidad (servicio de dominio).
// CostoUnitario = Σ material.CostPerUnit × entrada.QuantityNeeded, siempre con el precio vigente.
// Sin entradas devuelve 0 ("sin receta"), no es un error.
func UnitMaterialCost(lines []entity.BOMLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Material.CostPerUnit.Mul(l.Entry.QuantityNeeded))
	}
	return total
}

// BatchMaterialCost costo de materiales de una corrida de quantity unidades.
func BatchMaterialCost(lines []entity.BOMLine, quantity int64) decimal.Decimal {
	return UnitMaterialCost(lines).Mul(decimal.NewFromInt(quantity))
}

// UnitMargin desglose de costo y margen por unidad.
type UnitMargin struct {
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	TotalCost    decimal.Decimal
	Profit       decimal.Decimal
	MarginPct    decimal.Decimal
}

// CalculateUnitMargin Ganancia = Precio - (Materiales + ManoDeObra); Margen% = Ganancia / Precio × 100.
// Con precio 0 el margen es 0.
func CalculateUnitMargin(unitPrice, materialCost, laborCost decimal.Decimal) UnitMargin {
	total := materialCost.Add(laborCost)
	profit := unitPrice.Sub(total)
	margin := decimal.Zero
	if unitPrice.IsPositive() {
		margin = profit.Div(unitPrice).Mul(hundred).Round(2)
	}
	return UnitMargin{
		MaterialCost: materialCost,
		LaborCost:    laborCost,
		TotalCost:    total,
		Profit:       profit,
		MarginPct:    margin,
	}
}
