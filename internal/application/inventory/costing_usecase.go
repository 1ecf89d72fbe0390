package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// maxCostWorkers lecturas concurrentes al calcular el costo de todo el catálogo.
const maxCostWorkers = 8

// CostingUseCase costo unitario (material + mano de obra amortizada) y margen por producto.
// Solo lectura: usa precios de material vigentes y la tarifa por hora vigente.
type CostingUseCase struct {
	repos repository.UnitOfWork
	rate  *HourlyRate
}

// NewCostingUseCase construye el caso de uso.
func NewCostingUseCase(repos repository.UnitOfWork, rate *HourlyRate) *CostingUseCase {
	return &CostingUseCase{repos: repos, rate: rate}
}

// ProductCost costo y margen de un producto.
func (uc *CostingUseCase) ProductCost(ctx context.Context, productID string) (*dto.ProductCostResponse, error) {
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
	rate, err := uc.rate.Get(ctx)
	if err != nil {
		return nil, err
	}
	return uc.productCost(ctx, product, rate)
}

// ListProductCosts costo de todos los productos del catálogo, en el orden de ProductRepository.List.
func (uc *CostingUseCase) ListProductCosts(ctx context.Context) ([]dto.ProductCostResponse, error) {
	products, err := uc.repos.Products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	rate, err := uc.rate.Get(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProductCostResponse, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxCostWorkers)
	for i, p := range products {
		g.Go(func() error {
			c, err := uc.productCost(gctx, p, rate)
			if err != nil {
				return err
			}
			out[i] = *c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *CostingUseCase) productCost(ctx context.Context, p *entity.Product, rate decimal.Decimal) (*dto.ProductCostResponse, error) {
	lines, err := uc.repos.BOM.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	hours, err := uc.repos.Labor.TotalHours(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	units, err := uc.repos.Production.TotalProduced(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	material := inventory.UnitMaterialCost(lines)
	labor := inventory.UnitLaborCost(hours, rate, units)
	m := inventory.CalculateUnitMargin(p.UnitPrice, material, labor)
	return &dto.ProductCostResponse{
		ProductID:        p.ID,
		ProductName:      p.Name,
		UnitPrice:        p.UnitPrice,
		UnitMaterialCost: m.MaterialCost,
		UnitLaborCost:    m.LaborCost,
		TotalUnitCost:    m.TotalCost,
		Profit:           m.Profit,
		MarginPct:        m.MarginPct,
		HasRecipe:        len(lines) > 0,
		HasLaborData:     hours.IsPositive() && units > 0,
	}, nil
}
