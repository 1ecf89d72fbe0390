package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lista de estados válidos en el orden en que se muestran.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValidOrderStatus indica si s es uno de los estados conocidos.
func IsValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Order pedido de cliente. TotalAmount se fija al crear y no se recalcula.
type Order struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	TotalAmount   decimal.Decimal
	Status        string
	Notes         string
	CreatedAt     time.Time
	Items         []OrderLineItem
}

// OrderLineItem línea inmutable del pedido. ProductName y Price son copias al momento del pedido,
// no referencias vivas al producto.
type OrderLineItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int64
	Price       decimal.Decimal
	Position    int // índice en el pedido; las líneas se leen en este orden
	CreatedAt   time.Time
}

// Subtotal cantidad × precio de la línea.
func (i OrderLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
