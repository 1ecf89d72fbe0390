package inventory

import (
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Feasibility resultado de CheckFeasibility. Shortfalls trae una fila por entrada de la receta,
// también cuando es factible (Deficit = 0).
type Feasibility struct {
	Feasible   bool
	Shortfalls []domain.Shortfall
}

// CheckFeasibility requerido = QuantityNeeded × targetQuantity por entrada; factible si
// material.Quantity >= requerido para todas. El límite es inclusivo.
func CheckFeasibility(lines []entity.BOMLine, targetQuantity int64) Feasibility {
	target := decimal.NewFromInt(targetQuantity)
	res := Feasibility{Feasible: true, Shortfalls: make([]domain.Shortfall, 0, len(lines))}
	for _, l := range lines {
		required := l.Entry.QuantityNeeded.Mul(target)
		available := l.Material.Quantity
		deficit := decimal.Zero
		if available.LessThan(required) {
			deficit = required.Sub(available)
			res.Feasible = false
		}
		res.Shortfalls = append(res.Shortfalls, domain.Shortfall{
			MaterialID:   l.Material.ID,
			MaterialName: l.Material.Name,
			Unit:         l.Material.Unit,
			Required:     required,
			Available:    available,
			Deficit:      deficit,
		})
	}
	return res
}
