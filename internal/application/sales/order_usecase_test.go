package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/memory"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*sales.OrderUseCase, repository.UnitOfWork) {
	t.Helper()
	store, err := memory.New()
	require.NoError(t, err)
	repos := store.Repos()
	return sales.NewOrderUseCase(store, repos, logger.Nop()), repos
}

func seedProduct(t *testing.T, repos repository.UnitOfWork, name string, stock int64, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   "Candles",
		StockLevel: stock,
		UnitPrice:  d(price),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repos.Products.Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, repos repository.UnitOfWork, id string) int64 {
	t.Helper()
	p, err := repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockLevel
}

func order(items ...dto.OrderItemRequest) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{CustomerName: "Ana", CustomerEmail: "ana@example.com", Items: items}
}

func TestPlaceOrder_ConfirmaYDescuentaStock(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 10, "12.50")
	soap := seedProduct(t, repos, "Oat Soap", 5, "8")
	ctx := context.Background()

	out, err := uc.PlaceOrder(ctx, order(
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: soap.ID, Quantity: 5},
	))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, sales.OrderPlacedMessage, out.Message)
	assert.True(t, d("65").Equal(out.Total), out.Total.String())

	assert.Equal(t, int64(8), stockOf(t, repos, candle.ID))
	assert.Equal(t, int64(0), stockOf(t, repos, soap.ID))

	got, err := uc.GetOrder(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	require.Len(t, got.Items, 2)
	// Las líneas vuelven en el orden del carrito.
	assert.Equal(t, candle.ID, got.Items[0].ProductID)
	assert.Equal(t, soap.ID, got.Items[1].ProductID)
}

func TestPlaceOrder_SegundaLineaSinStockNoCreaNada(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 10, "12.50")
	soap := seedProduct(t, repos, "Oat Soap", 1, "8")
	ctx := context.Background()

	_, err := uc.PlaceOrder(ctx, order(
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: soap.ID, Quantity: 3},
	))
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Oat Soap", stockErr.ProductName)
	assert.Equal(t, int64(1), stockErr.Available)

	assert.Equal(t, int64(10), stockOf(t, repos, candle.ID))
	assert.Equal(t, int64(1), stockOf(t, repos, soap.ID))
	orders, err := uc.ListOrders(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_ProductoDesconocidoEnOrdenDeLineas(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 1, "12.50")

	// La primera línea falla por stock antes de llegar al producto inexistente.
	_, err := uc.PlaceOrder(context.Background(), order(
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: "zzz-no-existe", Quantity: 1},
	))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = uc.PlaceOrder(context.Background(), order(
		dto.OrderItemRequest{ProductID: "000-no-existe", Quantity: 1},
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 1},
	))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, int64(1), stockOf(t, repos, candle.ID))
}

func TestPlaceOrder_LineasRepetidasSeAcumulan(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 3, "10")

	_, err := uc.PlaceOrder(context.Background(), order(
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
	))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(3), stockOf(t, repos, candle.ID))

	out, err := uc.PlaceOrder(context.Background(), order(
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 1},
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
	))
	require.NoError(t, err)
	assert.True(t, d("30").Equal(out.Total))
	assert.Equal(t, int64(0), stockOf(t, repos, candle.ID))
}

func TestPlaceOrder_Validaciones(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 3, "10")
	ctx := context.Background()

	cases := map[string]dto.PlaceOrderRequest{
		"sin nombre":    {CustomerEmail: "a@b.c", Items: []dto.OrderItemRequest{{ProductID: candle.ID, Quantity: 1}}},
		"sin email":     {CustomerName: "Ana", Items: []dto.OrderItemRequest{{ProductID: candle.ID, Quantity: 1}}},
		"carrito vacío": {CustomerName: "Ana", CustomerEmail: "a@b.c"},
		"cantidad cero": order(dto.OrderItemRequest{ProductID: candle.ID}),
		"línea sin id":  order(dto.OrderItemRequest{Quantity: 1}),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.PlaceOrder(ctx, in)
			assert.True(t, errors.Is(err, domain.ErrValidation), "error: %v", err)
		})
	}
}

func TestPlaceOrder_LineaConservaNombreYPrecioHistoricos(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 3, "10")
	ctx := context.Background()

	out, err := uc.PlaceOrder(ctx, order(dto.OrderItemRequest{ProductID: candle.ID, Quantity: 1}))
	require.NoError(t, err)

	candle.Name = "Lavender Candle XL"
	candle.UnitPrice = d("99")
	candle.StockLevel = 2
	require.NoError(t, repos.Products.Update(ctx, candle))

	got, err := uc.GetOrder(ctx, out.OrderID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Lavender Candle", got.Items[0].ProductName)
	assert.True(t, d("10").Equal(got.Items[0].Price))
}

func TestUpdateStatus_CancelarNoRestauraStock(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 3, "10")
	ctx := context.Background()

	out, err := uc.PlaceOrder(ctx, order(dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2}))
	require.NoError(t, err)

	got, err := uc.UpdateStatus(ctx, out.OrderID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
	assert.Equal(t, int64(1), stockOf(t, repos, candle.ID))

	// Transiciones libres.
	_, err = uc.UpdateStatus(ctx, out.OrderID, entity.OrderStatusPending)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, out.OrderID, "shipped")
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = uc.UpdateStatus(ctx, "no-existe", entity.OrderStatusCompleted)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListOrdersYStats(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 100, "10")
	ctx := context.Background()

	var ids []string
	for _, qty := range []int64{1, 5, 3} {
		out, err := uc.PlaceOrder(ctx, order(dto.OrderItemRequest{ProductID: candle.ID, Quantity: qty}))
		require.NoError(t, err)
		ids = append(ids, out.OrderID)
	}
	_, err := uc.UpdateStatus(ctx, ids[1], entity.OrderStatusCancelled)
	require.NoError(t, err)

	highest, err := uc.ListOrders(ctx, "", repository.OrderSortHighest)
	require.NoError(t, err)
	require.Len(t, highest, 3)
	assert.True(t, d("50").Equal(highest[0].TotalAmount))
	assert.True(t, d("10").Equal(highest[2].TotalAmount))

	pending, err := uc.ListOrders(ctx, entity.OrderStatusPending, "")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = uc.ListOrders(ctx, "", "random")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.ByStatus[entity.OrderStatusPending])
	assert.Equal(t, 1, stats.ByStatus[entity.OrderStatusCancelled])
	assert.Equal(t, 0, stats.ByStatus[entity.OrderStatusCompleted])
	assert.True(t, d("40").Equal(stats.Revenue))
	assert.True(t, d("20").Equal(stats.AvgOrder))
}

// failingRunner corre la transacción real pero con un repositorio de productos que falla en la
// segunda actualización de stock, después de haber insertado el pedido y descontado la primera línea.
type failingRunner struct {
	inner   sales.TxRunner
	created *string
}

func (f failingRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return f.inner.Run(ctx, func(uow repository.UnitOfWork) error {
		uow.Products = &failingProducts{ProductRepository: uow.Products}
		uow.Orders = recordingOrders{OrderRepository: uow.Orders, created: f.created}
		return fn(uow)
	})
}

type recordingOrders struct {
	repository.OrderRepository
	created *string
}

func (r recordingOrders) Create(ctx context.Context, o *entity.Order) error {
	if err := r.OrderRepository.Create(ctx, o); err != nil {
		return err
	}
	*r.created = o.ID
	return nil
}

type failingProducts struct {
	repository.ProductRepository
	updates int
}

func (f *failingProducts) UpdateStockLevel(ctx context.Context, id string, level int64) error {
	f.updates++
	if f.updates == 2 {
		return domain.NewStoreFailure("update stock", errors.New("conexión perdida"))
	}
	return f.ProductRepository.UpdateStockLevel(ctx, id, level)
}

func TestPlaceOrder_FallaDelAlmacenamientoRevierteTodo(t *testing.T) {
	store, err := memory.New()
	require.NoError(t, err)
	repos := store.Repos()
	var createdID string
	uc := sales.NewOrderUseCase(failingRunner{inner: store, created: &createdID}, repos, logger.Nop())
	candle := seedProduct(t, repos, "Lavender Candle", 10, "12.50")
	soap := seedProduct(t, repos, "Oat Soap", 5, "8")
	ctx := context.Background()

	_, err = uc.PlaceOrder(ctx, order(
		dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2},
		dto.OrderItemRequest{ProductID: soap.ID, Quantity: 1},
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreFailure))
	assert.True(t, domain.IsRetryable(err))

	// El pedido llegó a insertarse dentro de la transacción y desapareció con el rollback.
	require.NotEmpty(t, createdID)
	gone, err := repos.Orders.GetByID(ctx, createdID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, int64(10), stockOf(t, repos, candle.ID))
	assert.Equal(t, int64(5), stockOf(t, repos, soap.ID))
	orders, err := uc.ListOrders(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)
}

func TestPlaceOrder_ConcurrentesNoSobrevendenStock(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 5, "10")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceOrder(context.Background(), order(dto.OrderItemRequest{ProductID: candle.ID, Quantity: 2}))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ok)
	assert.Equal(t, 2, fail)
	assert.Equal(t, int64(1), stockOf(t, repos, candle.ID))
}
