package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// placeholderImageURL imagen por defecto de la vitrina; %s = categoría.
const placeholderImageURL = "https://via.placeholder.com/400x500/272b33/e2e8f0?text=%s"

// ProductUseCase casos de uso CRUD para productos terminados y el listado de la tienda.
// El stock se mueve con producción y pedidos; Update solo lo toca como ajuste manual de conteo.
type ProductUseCase struct {
	txRunner TxRunner
	repos    repository.UnitOfWork
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner TxRunner, repos repository.UnitOfWork, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repos: repos, log: log.With("catalog")}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		SKU:         in.SKU,
		Category:    strings.TrimSpace(in.Category),
		StockLevel:  in.StockLevel,
		MinStock:    in.MinStock,
		UnitPrice:   in.UnitPrice,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Description: in.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("producto", id)
	}
	return toProductResponse(product), nil
}

// Update aplica los campos presentes. Bloquea la fila para no pisar un descuento de stock concurrente.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		product, err := uow.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("producto", id)
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.SKU != nil {
			product.SKU = strings.TrimSpace(*in.SKU)
		}
		if in.Category != nil {
			product.Category = strings.TrimSpace(*in.Category)
		}
		if in.StockLevel != nil {
			product.StockLevel = *in.StockLevel
		}
		if in.MinStock != nil {
			product.MinStock = *in.MinStock
		}
		if in.UnitPrice != nil {
			product.UnitPrice = *in.UnitPrice
		}
		if in.ImageURL != nil {
			product.ImageURL = strings.TrimSpace(*in.ImageURL)
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if err := validateProduct(product); err != nil {
			return err
		}
		product.UpdatedAt = time.Now().UTC()
		if err := uow.Products.Update(ctx, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	ev := uc.log.Info().Str("product_id", id)
	if in.StockLevel != nil {
		ev = ev.Int64("stock_level", *in.StockLevel)
	}
	ev.Msg("producto actualizado")
	return toProductResponse(out), nil
}

// List lista el catálogo. lowStockOnly = solo en o bajo el mínimo.
func (uc *ProductUseCase) List(ctx context.Context, lowStockOnly bool) ([]dto.ProductResponse, error) {
	list, err := uc.repos.Products.List(ctx, repository.ProductFilter{LowStockOnly: lowStockOnly})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Storefront productos con stock > 0 tal como los muestra la tienda. Sin imagen se usa un
// placeholder con la categoría; sin descripción, "<nombre> - <categoría>".
func (uc *ProductUseCase) Storefront(ctx context.Context) ([]dto.StorefrontProduct, error) {
	list, err := uc.repos.Products.List(ctx, repository.ProductFilter{InStockOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorefrontProduct, 0, len(list))
	for _, p := range list {
		out = append(out, toStorefrontProduct(p))
	}
	return out, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return domain.NewValidationError("product_name", "requerido")
	case p.StockLevel < 0:
		return domain.NewValidationError("stock_level", "no puede ser negativo")
	case p.MinStock < 0:
		return domain.NewValidationError("min_stock", "no puede ser negativo")
	case p.UnitPrice.IsNegative():
		return domain.NewValidationError("unit_price", "no puede ser negativo")
	}
	return domain.CheckScale("unit_price", p.UnitPrice, domain.ScaleMoney)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		StockLevel:  p.StockLevel,
		MinStock:    p.MinStock,
		UnitPrice:   p.UnitPrice,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		LowStock:    p.IsLowStock(),
		UpdatedAt:   p.UpdatedAt,
	}
}

func toStorefrontProduct(p *entity.Product) dto.StorefrontProduct {
	image := p.ImageURL
	if image == "" {
		image = fmt.Sprintf(placeholderImageURL, url.QueryEscape(p.Category))
	}
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = p.Name + " - " + p.Category
	}
	return dto.StorefrontProduct{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.UnitPrice,
		Image:       image,
		Description: desc,
		Stock:       p.StockLevel,
	}
}
