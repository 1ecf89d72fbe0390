package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material materia prima consumida por la producción.
type Material struct {
	ID           string
	Name         string
	Category     string
	Quantity     decimal.Decimal // nunca negativa
	Unit         string          // etiqueta, ej. "kg"
	Supplier     string
	ReorderPoint decimal.Decimal
	CostPerUnit  decimal.Decimal // precio vigente; el BOM siempre costea con este valor
	UpdatedAt    time.Time
}

// NeedsReorder indica si la cantidad está en o por debajo del punto de reorden.
func (m *Material) NeedsReorder() bool {
	return m.Quantity.LessThanOrEqual(m.ReorderPoint)
}
