package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	InStockOnly  bool // stock_level > 0 (vitrina)
	LowStockOnly bool // stock_level <= min_stock
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStockLevel(ctx context.Context, id string, stockLevel int64) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
