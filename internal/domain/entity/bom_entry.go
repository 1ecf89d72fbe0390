package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMEntry línea de receta: cuánto de un material requiere una unidad del producto.
// El par (ProductID, MaterialID) es único.
type BOMEntry struct {
	ID             string
	ProductID      string
	MaterialID     string
	QuantityNeeded decimal.Decimal // > 0
	CreatedAt      time.Time
}

// BOMLine entrada de receta resuelta con su material actual.
type BOMLine struct {
	Entry    BOMEntry
	Material Material
}
