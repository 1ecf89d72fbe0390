package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialFilter filtros para listar materiales.
type MaterialFilter struct {
	LowStockOnly bool // quantity <= reorder_point
}

// MaterialRepository define el puerto de persistencia para Material.
// GetByID y GetForUpdate devuelven (nil, nil) si el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
}
