package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto terminado del catálogo.
// StockLevel nunca es negativo: sube con producción y baja con pedidos.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Category    string
	StockLevel  int64
	MinStock    int64
	UnitPrice   decimal.Decimal // precio de venta
	ImageURL    string
	Description string
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.StockLevel <= p.MinStock
}
