package repository

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// BOMRepository puerto para las recetas (bill of materials).
type BOMRepository interface {
	// Create falla con domain.DuplicateRecipeEntryError si el par (producto, material) ya existe.
	Create(ctx context.Context, entry *entity.BOMEntry) error
	GetByPair(ctx context.Context, productID, materialID string) (*entity.BOMEntry, error)
	// ListByProduct devuelve las líneas con el material vigente, ordenadas por nombre de material.
	ListByProduct(ctx context.Context, productID string) ([]entity.BOMLine, error)
	// Delete devuelve domain.NotFoundError si la entrada no existe.
	Delete(ctx context.Context, productID, materialID string) error
}
