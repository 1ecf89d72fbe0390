package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// Criterios de orden para listar pedidos.
const (
	OrderSortNewest  = "newest"
	OrderSortOldest  = "oldest"
	OrderSortHighest = "highest"
	OrderSortLowest  = "lowest"
)

// OrderFilter filtros para listar pedidos.
type OrderFilter struct {
	Status string // vacío = todos
	Sort   string // OrderSort*; vacío = newest
}

// OrderRepository puerto para pedidos y sus líneas.
type OrderRepository interface {
	// Create inserta el pedido y todas sus líneas.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve el pedido con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// List devuelve pedidos sin líneas.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// UpdateStatus devuelve domain.NotFoundError si el pedido no existe.
	UpdateStatus(ctx context.Context, id, status string) error
}
