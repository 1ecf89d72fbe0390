package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del carrito.
type OrderItemRequest struct {
	ProductID string `json:"id"`
	Quantity  int64  `json:"qty"`
}

// PlaceOrderRequest body para POST /api/orders (tienda).
type PlaceOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	Items         []OrderItemRequest `json:"items"`
	Notes         string             `json:"notes,omitempty"`
}

// PlaceOrderResponse respuesta exitosa de la tienda.
type PlaceOrderResponse struct {
	Success bool            `json:"success"`
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
	Message string          `json:"message"`
}

// UpdateOrderStatusRequest body para cambiar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineItemResponse línea del pedido (copias históricas de nombre y precio).
type OrderLineItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID            string                  `json:"id"`
	CustomerName  string                  `json:"customer_name"`
	CustomerEmail string                  `json:"customer_email"`
	CustomerPhone string                  `json:"customer_phone,omitempty"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	Status        string                  `json:"status"`
	Notes         string                  `json:"notes,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	Items         []OrderLineItemResponse `json:"items,omitempty"`
}

// OrderStatsResponse resumen para el tablero de pedidos.
type OrderStatsResponse struct {
	TotalOrders int             `json:"total_orders"`
	ByStatus    map[string]int  `json:"by_status"`
	Revenue     decimal.Decimal `json:"revenue"` // pedidos no cancelados
	AvgOrder    decimal.Decimal `json:"avg_order"`
}
