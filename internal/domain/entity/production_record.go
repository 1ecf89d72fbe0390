package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionRecord registro de auditoría de una corrida de producción. Solo inserción.
type ProductionRecord struct {
	ID               string
	ProductID        string
	QuantityProduced int64
	MaterialCost     decimal.Decimal // costo unitario de materiales × cantidad, al momento de producir
	ProducedBy       string
	ProductionDate   time.Time
	Notes            string
	CreatedAt        time.Time
}
