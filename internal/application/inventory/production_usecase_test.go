package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

func TestProduce_ConsumeMaterialesYSumaStock(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Lavender Candle", 5, 2, "20")
	m1 := seedMaterial(t, repos, "Soy Wax", "10", "2", "1.50")
	m2 := seedMaterial(t, repos, "Wick", "10", "2", "2.00")
	seedBOM(t, repos, p.ID, m1.ID, "2")
	seedBOM(t, repos, p.ID, m2.ID, "1")

	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())
	out, err := uc.Produce(context.Background(), inventory.ProduceInput{
		ProductID: p.ID, Quantity: 3, ProducedBy: "Ana",
	})
	require.NoError(t, err)

	assert.True(t, d("4").Equal(materialQty(t, repos, m1.ID)))
	assert.True(t, d("7").Equal(materialQty(t, repos, m2.ID)))
	assert.Equal(t, int64(8), stockLevel(t, repos, p.ID))
	assert.Equal(t, int64(8), out.NewStockLevel)
	// (2 × 1.50 + 1 × 2.00) × 3
	assert.True(t, d("15").Equal(out.Record.MaterialCost), out.Record.MaterialCost.String())
	assert.False(t, out.Record.ProductionDate.IsZero())

	records, err := uc.ListRecords(context.Background(), p.ID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].QuantityProduced)
}

func TestProduce_CostoRedondeadoAEscalaDeAlmacenamiento(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Tealight", 0, 0, "1")
	m := seedMaterial(t, repos, "Paraffin", "10", "0", "0.3333")
	seedBOM(t, repos, p.ID, m.ID, "0.3333")
	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())

	out, err := uc.Produce(context.Background(), inventory.ProduceInput{ProductID: p.ID, Quantity: 1, ProducedBy: "Ana"})
	require.NoError(t, err)
	// 0.3333 × 0.3333 = 0.11108889
	assert.True(t, d("0.1111").Equal(out.Record.MaterialCost), out.Record.MaterialCost.String())

	records, err := uc.ListRecords(context.Background(), p.ID, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, out.Record.MaterialCost.Equal(records[0].MaterialCost))
}

func TestProduce_MaterialesInsuficientesNoModificaNada(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Lavender Candle", 5, 2, "20")
	m1 := seedMaterial(t, repos, "Soy Wax", "10", "2", "1.50")
	m2 := seedMaterial(t, repos, "Wick", "10", "2", "2.00")
	seedBOM(t, repos, p.ID, m1.ID, "2")
	seedBOM(t, repos, p.ID, m2.ID, "1")

	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())
	_, err := uc.Produce(context.Background(), inventory.ProduceInput{
		ProductID: p.ID, Quantity: 6, ProducedBy: "Ana",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientMaterials))
	assert.False(t, domain.IsRetryable(err))

	var insufficient *domain.InsufficientMaterialsError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortfalls, 2)
	for _, s := range insufficient.Shortfalls {
		if s.MaterialID == m1.ID {
			assert.True(t, d("2").Equal(s.Deficit))
		} else {
			assert.True(t, s.Deficit.IsZero())
		}
	}

	assert.True(t, d("10").Equal(materialQty(t, repos, m1.ID)))
	assert.True(t, d("10").Equal(materialQty(t, repos, m2.ID)))
	assert.Equal(t, int64(5), stockLevel(t, repos, p.ID))
	records, err := uc.ListRecords(context.Background(), p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProduce_LimiteExactoEsFactible(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Oat Soap", 0, 0, "8")
	m := seedMaterial(t, repos, "Oats", "1.5", "0", "3")
	seedBOM(t, repos, p.ID, m.ID, "0.5")

	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())
	_, err := uc.Produce(context.Background(), inventory.ProduceInput{ProductID: p.ID, Quantity: 3, ProducedBy: "Luis"})
	require.NoError(t, err)
	assert.True(t, materialQty(t, repos, m.ID).IsZero())
}

func TestProduce_FallaDelAlmacenamientoRevierteTodo(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Lavender Candle", 5, 2, "20")
	m1 := seedMaterial(t, repos, "Soy Wax", "10", "2", "1.50")
	seedBOM(t, repos, p.ID, m1.ID, "2")

	uc := inventory.NewProductionUseCase(failingRunner{inner: store}, repos, logger.Nop())
	_, err := uc.Produce(context.Background(), inventory.ProduceInput{ProductID: p.ID, Quantity: 2, ProducedBy: "Ana"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreFailure))
	assert.True(t, domain.IsRetryable(err))

	assert.True(t, d("10").Equal(materialQty(t, repos, m1.ID)))
	assert.Equal(t, int64(5), stockLevel(t, repos, p.ID))
}

func TestProduce_SinRecetaEsRechazo(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Gift Box", 0, 0, "30")

	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())
	_, err := uc.Produce(context.Background(), inventory.ProduceInput{ProductID: p.ID, Quantity: 1, ProducedBy: "Ana"})
	assert.True(t, errors.Is(err, domain.ErrNoRecipeDefined))
	assert.False(t, domain.IsRetryable(err))
	assert.Equal(t, int64(0), stockLevel(t, repos, p.ID))
}

func TestProduce_Validaciones(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Gift Box", 0, 0, "30")
	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())
	ctx := context.Background()

	cases := []struct {
		name  string
		in    inventory.ProduceInput
		field string
	}{
		{"sin producto", inventory.ProduceInput{Quantity: 1, ProducedBy: "Ana"}, "product_id"},
		{"cantidad cero", inventory.ProduceInput{ProductID: p.ID, ProducedBy: "Ana"}, "quantity"},
		{"cantidad negativa", inventory.ProduceInput{ProductID: p.ID, Quantity: -2, ProducedBy: "Ana"}, "quantity"},
		{"sin responsable", inventory.ProduceInput{ProductID: p.ID, Quantity: 1, ProducedBy: "  "}, "produced_by"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Produce(ctx, tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "error: %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	_, err := uc.Produce(ctx, inventory.ProduceInput{ProductID: "no-existe", Quantity: 1, ProducedBy: "Ana"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProduce_ConcurrentesNoSobregiranMaterial(t *testing.T) {
	store, repos := newStore(t)
	p := seedProduct(t, repos, "Lavender Candle", 0, 0, "20")
	m := seedMaterial(t, repos, "Soy Wax", "10", "0", "1")
	seedBOM(t, repos, p.ID, m.ID, "2")
	uc := inventory.NewProductionUseCase(store, repos, logger.Nop())

	// Cada corrida consume 6; solo una de las dos cabe.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Produce(context.Background(), inventory.ProduceInput{ProductID: p.ID, Quantity: 3, ProducedBy: "Ana"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientMaterials) {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, fail)
	assert.True(t, d("4").Equal(materialQty(t, repos, m.ID)))
	assert.Equal(t, int64(3), stockLevel(t, repos, p.ID))
}
