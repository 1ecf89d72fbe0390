package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// ProductionRepository puerto para el historial de producción (solo inserción).
type ProductionRepository interface {
	Create(ctx context.Context, record *entity.ProductionRecord) error
	// List ordena por fecha de producción descendente. productID vacío = todos.
	List(ctx context.Context, productID string, limit int) ([]*entity.ProductionRecord, error)
	// TotalProduced suma histórica de unidades producidas del producto.
	TotalProduced(ctx context.Context, productID string) (int64, error)
}
