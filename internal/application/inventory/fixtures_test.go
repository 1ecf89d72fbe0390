package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T) (*memory.Store, repository.UnitOfWork) {
	t.Helper()
	store, err := memory.New()
	require.NoError(t, err)
	return store, store.Repos()
}

func seedProduct(t *testing.T, repos repository.UnitOfWork, name string, stock, minStock int64, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   "Candles",
		StockLevel: stock,
		MinStock:   minStock,
		UnitPrice:  d(price),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repos.Products.Create(context.Background(), p))
	return p
}

func seedMaterial(t *testing.T, repos repository.UnitOfWork, name, qty, reorder, cost string) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:           uuid.New().String(),
		Name:         name,
		Quantity:     d(qty),
		Unit:         "kg",
		ReorderPoint: d(reorder),
		CostPerUnit:  d(cost),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repos.Materials.Create(context.Background(), m))
	return m
}

func seedBOM(t *testing.T, repos repository.UnitOfWork, productID, materialID, needed string) {
	t.Helper()
	require.NoError(t, repos.BOM.Create(context.Background(), &entity.BOMEntry{
		ID:             uuid.New().String(),
		ProductID:      productID,
		MaterialID:     materialID,
		QuantityNeeded: d(needed),
		CreatedAt:      time.Now().UTC(),
	}))
}

func materialQty(t *testing.T, repos repository.UnitOfWork, id string) decimal.Decimal {
	t.Helper()
	m, err := repos.Materials.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Quantity
}

func stockLevel(t *testing.T, repos repository.UnitOfWork, id string) int64 {
	t.Helper()
	p, err := repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockLevel
}

// failingRunner sustituye el repositorio de producción dentro de la transacción por uno que
// falla al insertar, después de que materiales y stock ya se escribieron.
type failingRunner struct {
	inner *memory.Store
}

func (f failingRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return f.inner.Run(ctx, func(uow repository.UnitOfWork) error {
		uow.Production = failingProduction{ProductionRepository: uow.Production}
		return fn(uow)
	})
}

type failingProduction struct {
	repository.ProductionRepository
}

func (failingProduction) Create(context.Context, *entity.ProductionRecord) error {
	return domain.NewStoreFailure("insert production record", errors.New("conexión perdida"))
}
