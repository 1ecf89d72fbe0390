package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// BOMUseCase resuelve recetas: qué materiales y cuánto requiere una unidad de producto,
// su costo unitario y la factibilidad para una cantidad objetivo.
type BOMUseCase struct {
	txRunner TxRunner
	repos    repository.UnitOfWork
	log      *logger.Logger
}

// NewBOMUseCase construye el caso de uso. repos son repositorios fuera de transacción (lecturas).
func NewBOMUseCase(txRunner TxRunner, repos repository.UnitOfWork, log *logger.Logger) *BOMUseCase {
	return &BOMUseCase{txRunner: txRunner, repos: repos, log: log.With("bom")}
}

// GetRecipe devuelve las líneas de la receta (orden estable por nombre de material) y su costo unitario.
// Un producto sin líneas devuelve receta vacía con costo 0.
func (uc *BOMUseCase) GetRecipe(ctx context.Context, productID string) (*dto.BOMResponse, error) {
	lines, err := uc.loadLines(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.BOMResponse{
		ProductID:        productID,
		Lines:            make([]dto.BOMLineResponse, 0, len(lines)),
		UnitMaterialCost: inventory.UnitMaterialCost(lines),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, toBOMLineResponse(l))
	}
	return out, nil
}

// CheckFeasibility indica si hay material suficiente para producir targetQuantity unidades.
// Devuelve el detalle por material aun cuando es factible.
func (uc *BOMUseCase) CheckFeasibility(ctx context.Context, productID string, targetQuantity int64) (*dto.FeasibilityResponse, error) {
	if targetQuantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	lines, err := uc.loadLines(ctx, productID)
	if err != nil {
		return nil, err
	}
	res := inventory.CheckFeasibility(lines, targetQuantity)
	return &dto.FeasibilityResponse{
		ProductID:      productID,
		TargetQuantity: targetQuantity,
		Feasible:       res.Feasible,
		Shortfalls:     toShortfallDTOs(res.Shortfalls),
	}, nil
}

// AddEntry agrega un material a la receta. Si el par ya existe falla con DuplicateRecipeEntry:
// para cambiar la cantidad hay que borrar la entrada primero.
func (uc *BOMUseCase) AddEntry(ctx context.Context, productID string, in dto.AddBOMEntryRequest) (*dto.BOMLineResponse, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "requerido")
	}
	if in.MaterialID == "" {
		return nil, domain.NewValidationError("material_id", "requerido")
	}
	if !in.QuantityNeeded.IsPositive() {
		return nil, domain.NewValidationError("quantity_needed", "debe ser mayor que cero")
	}
	if err := domain.CheckScale("quantity_needed", in.QuantityNeeded, domain.ScaleQuantity); err != nil {
		return nil, err
	}

	var line entity.BOMLine
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		product, err := uow.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("producto", productID)
		}
		material, err := uow.Materials.GetByID(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.NewNotFoundError("material", in.MaterialID)
		}
		existing, err := uow.BOM.GetByPair(ctx, productID, in.MaterialID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateRecipeEntryError{ProductID: productID, MaterialID: in.MaterialID}
		}
		entry := entity.BOMEntry{
			ID:             uuid.New().String(),
			ProductID:      productID,
			MaterialID:     in.MaterialID,
			QuantityNeeded: in.QuantityNeeded,
			CreatedAt:      time.Now().UTC(),
		}
		// La restricción única del almacenamiento también rechaza la carrera entre dos altas simultáneas
		if err := uow.BOM.Create(ctx, &entry); err != nil {
			return err
		}
		line = entity.BOMLine{Entry: entry, Material: *material}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", productID).
		Str("material_id", in.MaterialID).
		Str("quantity_needed", in.QuantityNeeded.String()).
		Msg("entrada de receta agregada")
	out := toBOMLineResponse(line)
	return &out, nil
}

// DeleteEntry quita un material de la receta.
func (uc *BOMUseCase) DeleteEntry(ctx context.Context, productID, materialID string) error {
	if productID == "" || materialID == "" {
		return domain.NewValidationError("material_id", "requerido")
	}
	if err := uc.repos.BOM.Delete(ctx, productID, materialID); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", productID).Str("material_id", materialID).Msg("entrada de receta eliminada")
	return nil
}

func (uc *BOMUseCase) loadLines(ctx context.Context, productID string) ([]entity.BOMLine, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "requerido")
	}
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("producto", productID)
	}
	return uc.repos.BOM.ListByProduct(ctx, productID)
}
