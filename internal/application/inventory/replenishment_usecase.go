package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos terminados en o bajo su
// stock mínimo y materiales en o bajo su punto de reorden, con la cantidad sugerida.
// Es solo consultiva; nunca modifica inventario.
type ReplenishmentUseCase struct {
	repos repository.UnitOfWork
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repos repository.UnitOfWork) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repos: repos}
}

// GenerateReplenishmentList devuelve ambas listas ordenadas por mayor déficit relativo primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) (*dto.ReplenishmentResponse, error) {
	var (
		products  []*entity.Product
		materials []*entity.Material
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.repos.Products.List(gctx, repository.ProductFilter{LowStockOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		materials, err = uc.repos.Materials.List(gctx, repository.MaterialFilter{LowStockOnly: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.ReplenishmentResponse{
		Products:  make([]dto.ProductReorderDTO, 0, len(products)),
		Materials: make([]dto.MaterialReorderDTO, 0, len(materials)),
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductReorderDTO{
			ProductID:    p.ID,
			ProductName:  p.Name,
			SKU:          p.SKU,
			StockLevel:   p.StockLevel,
			MinStock:     p.MinStock,
			SuggestedQty: inventory.SuggestReorderUnits(p.StockLevel, p.MinStock),
		})
	}
	for _, m := range materials {
		qty := inventory.SuggestReorder(m.Quantity, m.ReorderPoint)
		out.Materials = append(out.Materials, dto.MaterialReorderDTO{
			MaterialID:    m.ID,
			MaterialName:  m.Name,
			Unit:          m.Unit,
			Quantity:      m.Quantity,
			ReorderPoint:  m.ReorderPoint,
			SuggestedQty:  qty,
			EstimatedCost: qty.Mul(m.CostPerUnit).Round(2),
		})
	}

	// Mayor caída relativa bajo el umbral primero; empate por nombre.
	sort.SliceStable(out.Products, func(i, j int) bool {
		ri := coverage(decimal.NewFromInt(out.Products[i].StockLevel), decimal.NewFromInt(out.Products[i].MinStock))
		rj := coverage(decimal.NewFromInt(out.Products[j].StockLevel), decimal.NewFromInt(out.Products[j].MinStock))
		if !ri.Equal(rj) {
			return ri.LessThan(rj)
		}
		return out.Products[i].ProductName < out.Products[j].ProductName
	})
	sort.SliceStable(out.Materials, func(i, j int) bool {
		ri := coverage(out.Materials[i].Quantity, out.Materials[i].ReorderPoint)
		rj := coverage(out.Materials[j].Quantity, out.Materials[j].ReorderPoint)
		if !ri.Equal(rj) {
			return ri.LessThan(rj)
		}
		return out.Materials[i].MaterialName < out.Materials[j].MaterialName
	})
	return out, nil
}

// coverage nivel / umbral. Umbral 0 cuenta como cobertura completa.
func coverage(level, threshold decimal.Decimal) decimal.Decimal {
	if !threshold.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return level.Div(threshold)
}
