package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborEntry horas trabajadas sobre un producto. Solo inserción; el costo se calcula al leer.
type LaborEntry struct {
	ID        string
	ProductID string
	Worker    string
	Hours     decimal.Decimal
	WorkDate  time.Time
	Notes     string
	CreatedAt time.Time
}
