package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LaborFilter filtros para listar horas registradas.
type LaborFilter struct {
	ProductID string
	Worker    string
}

// LaborRepository puerto para las horas de mano de obra (solo inserción).
type LaborRepository interface {
	Create(ctx context.Context, entry *entity.LaborEntry) error
	List(ctx context.Context, filter LaborFilter) ([]*entity.LaborEntry, error)
	// TotalHours suma histórica de horas del producto.
	TotalHours(ctx context.Context, productID string) (decimal.Decimal, error)
}
