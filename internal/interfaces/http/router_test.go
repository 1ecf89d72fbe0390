package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/finance"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/memory"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/metamorphocus-api/internal/interfaces/http"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacenamiento en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := memory.New()
	require.NoError(t, err)
	repos := store.Repos()
	log := logger.Nop()

	rate := inventory.NewHourlyRate(repos.Settings, decimal.RequireFromString("15"))
	orders := sales.NewOrderUseCase(store, repos, log)

	app := fiber.New()
	apphttp.UseMiddleware(app, log, "*")
	apphttp.Router(app, apphttp.RouterDeps{
		Products:      catalog.NewProductUseCase(store, repos, log),
		Materials:     catalog.NewMaterialUseCase(store, repos, log),
		BOM:           inventory.NewBOMUseCase(store, repos, log),
		Production:    inventory.NewProductionUseCase(store, repos, log),
		Labor:         inventory.NewLaborUseCase(repos, rate, log),
		Costing:       inventory.NewCostingUseCase(repos, rate),
		Replenishment: inventory.NewReplenishmentUseCase(repos),
		Orders:        orders,
		Receipts:      sales.NewReceiptUseCase(orders, pdf.NewReceiptGenerator("Metamorphocus")),
		Finance:       finance.NewTransactionUseCase(repos, log),
	})
	return app
}

// do envía la petición y devuelve estado y cuerpo.
func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createProduct(t *testing.T, app *fiber.App, name string, stock int64, price string) dto.ProductResponse {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/manager/products", map[string]interface{}{
		"product_name": name,
		"category":     "Candles",
		"stock_level":  stock,
		"min_stock":    2,
		"unit_price":   price,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	return decode[dto.ProductResponse](t, body)
}

func createMaterial(t *testing.T, app *fiber.App, name, qty, cost string) dto.MaterialResponse {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/manager/materials", map[string]interface{}{
		"material_name": name,
		"quantity":      qty,
		"unit":          "kg",
		"reorder_point": "1",
		"cost_per_unit": cost,
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	return decode[dto.MaterialResponse](t, body)
}

func addEntry(t *testing.T, app *fiber.App, productID, materialID, qty string) (int, []byte) {
	t.Helper()
	return do(t, app, http.MethodPost, "/api/manager/products/"+productID+"/bom", map[string]interface{}{
		"material_id":     materialID,
		"quantity_needed": qty,
	})
}

func placeOrder(t *testing.T, app *fiber.App, items ...map[string]interface{}) (int, []byte) {
	t.Helper()
	return do(t, app, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name":  "Ana",
		"customer_email": "ana@example.com",
		"items":          items,
	})
}

func item(id string, qty int64) map[string]interface{} {
	return map[string]interface{}{"id": id, "qty": qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestStorefront_ListaSoloConStock(t *testing.T) {
	app := buildTestApp(t)
	inStock := createProduct(t, app, "Lavender Candle", 5, "12.50")
	createProduct(t, app, "Agotado", 0, "9")

	status, body := do(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, status)
	list := decode[[]dto.StorefrontProduct](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, inStock.ID, list[0].ID)
	assert.Equal(t, "Lavender Candle - Candles", list[0].Description)
	assert.NotEmpty(t, list[0].Image)
}

func TestStorefront_PlaceOrderOK(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 5, "12.50")

	status, body := placeOrder(t, app, item(p.ID, 2))
	require.Equal(t, fiber.StatusOK, status, string(body))
	out := decode[dto.PlaceOrderResponse](t, body)
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.OrderID)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, sales.OrderPlacedMessage, out.Message)

	status, body = do(t, app, http.MethodGet, "/api/manager/products/"+p.ID, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(3), decode[dto.ProductResponse](t, body).StockLevel)
}

func TestStorefront_PlaceOrderErrores(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 1, "12.50")

	t.Run("producto inexistente responde 404", func(t *testing.T) {
		status, body := placeOrder(t, app, item("no-existe", 1))
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
	})
	t.Run("stock insuficiente responde 400", func(t *testing.T) {
		status, body := placeOrder(t, app, item(p.ID, 2))
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeInsufficientStock, decode[dto.ErrorResponse](t, body).Code)
	})
	t.Run("carrito vacío responde 400", func(t *testing.T) {
		status, body := placeOrder(t, app)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, body).Code)
	})
	t.Run("cuerpo inválido responde 400", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/orders", "{no es json")
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeInvalidBody, decode[dto.ErrorResponse](t, body).Code)
	})

	// Ningún rechazo tocó el stock
	_, body := do(t, app, http.MethodGet, "/api/manager/products/"+p.ID, nil)
	assert.Equal(t, int64(1), decode[dto.ProductResponse](t, body).StockLevel)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recetas y producción
// ──────────────────────────────────────────────────────────────────────────────

func TestBOM_DuplicadoResponde409(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 0, "12.50")
	wax := createMaterial(t, app, "Soy Wax", "10", "4")

	status, body := addEntry(t, app, p.ID, wax.ID, "0.25")
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = addEntry(t, app, p.ID, wax.ID, "0.5")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, apphttp.CodeDuplicateRecipeEntry, decode[dto.ErrorResponse](t, body).Code)

	status, _ = do(t, app, http.MethodDelete, "/api/manager/products/"+p.ID+"/bom/"+wax.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = addEntry(t, app, p.ID, wax.ID, "0.5")
	require.Equal(t, fiber.StatusCreated, status, string(body))
	line := decode[dto.BOMLineResponse](t, body)
	assert.True(t, line.QuantityNeeded.Equal(decimal.RequireFromString("0.5")))
}

func TestProduction_Endpoints(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 0, "12.50")
	wax := createMaterial(t, app, "Soy Wax", "1", "4")
	status, body := addEntry(t, app, p.ID, wax.ID, "0.25")
	require.Equal(t, fiber.StatusCreated, status, string(body))

	produce := func(productID string, qty int64) (int, []byte) {
		return do(t, app, http.MethodPost, "/api/manager/production", map[string]interface{}{
			"product_id":      productID,
			"quantity":        qty,
			"produced_by":     "Marta",
			"production_date": "2026-03-01",
		})
	}

	t.Run("factibilidad informa el faltante", func(t *testing.T) {
		status, body := do(t, app, http.MethodGet, "/api/manager/products/"+p.ID+"/feasibility?quantity=5", nil)
		require.Equal(t, fiber.StatusOK, status)
		res := decode[dto.FeasibilityResponse](t, body)
		assert.False(t, res.Feasible)
		require.Len(t, res.Shortfalls, 1)
		assert.True(t, res.Shortfalls[0].Deficit.Equal(decimal.RequireFromString("0.25")))
	})

	t.Run("material insuficiente responde 409 con detalle", func(t *testing.T) {
		status, body := produce(p.ID, 5)
		assert.Equal(t, fiber.StatusConflict, status)
		errBody := decode[dto.ErrorResponse](t, body)
		assert.Equal(t, apphttp.CodeInsufficientMaterials, errBody.Code)
		assert.NotNil(t, errBody.Details)
		assert.False(t, errBody.Retryable)
	})

	t.Run("sin receta responde 422", func(t *testing.T) {
		other := createProduct(t, app, "Sin receta", 0, "5")
		status, body := produce(other.ID, 1)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, apphttp.CodeNoRecipeDefined, decode[dto.ErrorResponse](t, body).Code)
	})

	t.Run("fecha inválida responde 400", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/manager/production", map[string]interface{}{
			"product_id":      p.ID,
			"quantity":        1,
			"produced_by":     "Marta",
			"production_date": "01/03/2026",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, body).Code)
	})

	t.Run("corrida exacta consume todo", func(t *testing.T) {
		status, body := produce(p.ID, 4)
		require.Equal(t, fiber.StatusCreated, status, string(body))
		out := decode[dto.ProductionResponse](t, body)
		assert.Equal(t, int64(4), out.NewStockLevel)
		assert.True(t, out.Record.MaterialCost.Equal(decimal.RequireFromString("4")))

		_, body = do(t, app, http.MethodGet, "/api/manager/materials/"+wax.ID, nil)
		assert.True(t, decode[dto.MaterialResponse](t, body).Quantity.IsZero())

		_, body = do(t, app, http.MethodGet, "/api/manager/production?product_id="+p.ID, nil)
		assert.Len(t, decode[[]dto.ProductionRecordResponse](t, body), 1)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Mano de obra, costos y reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestLaborAndCosts(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 0, "20")
	wax := createMaterial(t, app, "Soy Wax", "10", "4")
	status, body := addEntry(t, app, p.ID, wax.ID, "0.5")
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = do(t, app, http.MethodGet, "/api/manager/settings/hourly-rate", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decode[dto.HourlyRateResponse](t, body).HourlyRate.Equal(decimal.RequireFromString("15")))

	status, body = do(t, app, http.MethodPut, "/api/manager/settings/hourly-rate", map[string]interface{}{"hourly_rate": "-1"})
	assert.Equal(t, fiber.StatusBadRequest, status, string(body))

	status, body = do(t, app, http.MethodPut, "/api/manager/settings/hourly-rate", map[string]interface{}{"hourly_rate": "10"})
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = do(t, app, http.MethodPost, "/api/manager/production", map[string]interface{}{
		"product_id": p.ID, "quantity": 4, "produced_by": "Marta",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = do(t, app, http.MethodPost, "/api/manager/labor", map[string]interface{}{
		"product_id": p.ID, "worker": "Marta", "hours": "2", "work_date": "2026-03-01",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = do(t, app, http.MethodGet, "/api/manager/labor?worker=Marta", nil)
	require.Equal(t, fiber.StatusOK, status)
	labor := decode[dto.LaborListResponse](t, body)
	require.Len(t, labor.Items, 1)
	assert.True(t, labor.TotalCost.Equal(decimal.RequireFromString("20")))

	// material 0.5 × 4 = 2; mano de obra 2h × 10 / 4 unidades = 5
	status, body = do(t, app, http.MethodGet, "/api/manager/products/"+p.ID+"/cost", nil)
	require.Equal(t, fiber.StatusOK, status)
	cost := decode[dto.ProductCostResponse](t, body)
	assert.True(t, cost.UnitMaterialCost.Equal(decimal.RequireFromString("2")))
	assert.True(t, cost.UnitLaborCost.Equal(decimal.RequireFromString("5")))
	assert.True(t, cost.Profit.Equal(decimal.RequireFromString("13")))

	status, body = do(t, app, http.MethodGet, "/api/manager/inventory/costs", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.ProductCostResponse](t, body), 1)
}

func TestReplenishmentList(t *testing.T) {
	app := buildTestApp(t)
	low := createProduct(t, app, "Lavender Candle", 1, "12.50")
	createProduct(t, app, "Bien surtido", 50, "9")
	wax := createMaterial(t, app, "Soy Wax", "0.5", "4")

	status, body := do(t, app, http.MethodGet, "/api/manager/inventory/replenishment", nil)
	require.Equal(t, fiber.StatusOK, status)
	out := decode[dto.ReplenishmentResponse](t, body)
	require.Len(t, out.Products, 1)
	assert.Equal(t, low.ID, out.Products[0].ProductID)
	require.Len(t, out.Materials, 1)
	assert.Equal(t, wax.ID, out.Materials[0].MaterialID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos (panel)
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_Backoffice(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 10, "10")

	status, body := placeOrder(t, app, item(p.ID, 1))
	require.Equal(t, fiber.StatusOK, status, string(body))
	first := decode[dto.PlaceOrderResponse](t, body)
	status, body = placeOrder(t, app, item(p.ID, 3))
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = do(t, app, http.MethodGet, "/api/manager/orders?sort=highest", nil)
	require.Equal(t, fiber.StatusOK, status)
	list := decode[[]dto.OrderResponse](t, body)
	require.Len(t, list, 2)
	assert.True(t, list[0].TotalAmount.Equal(decimal.RequireFromString("30")))

	status, _ = do(t, app, http.MethodGet, "/api/manager/orders?sort=alfabetico", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPatch, "/api/manager/orders/"+first.OrderID+"/status",
		map[string]string{"status": "cancelled"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "cancelled", decode[dto.OrderResponse](t, body).Status)

	status, body = do(t, app, http.MethodGet, "/api/manager/orders/stats", nil)
	require.Equal(t, fiber.StatusOK, status)
	stats := decode[dto.OrderStatsResponse](t, body)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.ByStatus["cancelled"])
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("30")))

	status, body = do(t, app, http.MethodGet, "/api/manager/orders/"+first.OrderID, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[dto.OrderResponse](t, body).Items, 1)

	status, _ = do(t, app, http.MethodGet, "/api/manager/orders/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestOrders_ReceiptPDF(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, "Lavender Candle", 10, "10")
	status, body := placeOrder(t, app, item(p.ID, 2))
	require.Equal(t, fiber.StatusOK, status, string(body))
	order := decode[dto.PlaceOrderResponse](t, body)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/orders/"+order.OrderID+"/receipt", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestRequestID(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestExportCSV(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, "Lavender Candle", 5, "12.5")
	createMaterial(t, app, "Soy Wax", "10", "4")

	status, body := do(t, app, http.MethodGet, "/api/manager/products/export", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "product_name,sku,category,stock_level,min_stock,unit_price,description\n"+
		"Lavender Candle,,Candles,5,2,12.50,\n", string(body))

	status, body = do(t, app, http.MethodGet, "/api/manager/materials/export", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "Soy Wax,,10,kg,,1,4\n")
}

func TestFinance_RegistrarFiltrarYResumir(t *testing.T) {
	app := buildTestApp(t)
	for _, tx := range []map[string]interface{}{
		{"date": "2026-01-10", "type": "income", "category": "Ventas", "description": "Feria", "amount": "100", "payment_method": "cash"},
		{"date": "2026-01-20", "type": "expense", "category": "Insumos", "description": "Cera", "amount": "40.50", "payment_method": "debit_card"},
		{"date": "2026-02-02", "type": "income", "category": "Ventas", "description": "Tienda", "amount": "60", "payment_method": "bank_transfer"},
	} {
		status, body := do(t, app, http.MethodPost, "/api/manager/finance", tx)
		require.Equal(t, fiber.StatusCreated, status, string(body))
	}

	status, body := do(t, app, http.MethodGet, "/api/manager/finance?type=income", nil)
	require.Equal(t, fiber.StatusOK, status)
	income := decode[[]dto.FinanceTransactionResponse](t, body)
	require.Len(t, income, 2)
	assert.Equal(t, "Tienda", income[0].Description)

	status, body = do(t, app, http.MethodGet, "/api/manager/finance?from=2026-01-01&to=2026-01-31", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.FinanceTransactionResponse](t, body), 2)

	status, body = do(t, app, http.MethodGet, "/api/manager/finance/overview", nil)
	require.Equal(t, fiber.StatusOK, status)
	o := decode[dto.FinanceOverviewResponse](t, body)
	assert.Equal(t, 3, o.TransactionCount)
	assert.True(t, o.TotalIncome.Equal(decimal.RequireFromString("160")))
	assert.True(t, o.TotalExpenses.Equal(decimal.RequireFromString("40.5")))
	assert.True(t, o.NetBalance.Equal(decimal.RequireFromString("119.5")))
	require.Len(t, o.Monthly, 2)

	status, body = do(t, app, http.MethodGet, "/api/manager/finance/export", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "date,type,category,description,amount,payment_method")
	assert.Contains(t, string(body), "2026-01-20,expense,Insumos,Cera,40.50,debit_card")
}

func TestFinance_ValidacionYBorrado(t *testing.T) {
	app := buildTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/manager/finance", map[string]interface{}{
		"type": "income", "category": "Ventas", "description": "Feria", "amount": "-1", "payment_method": "cash",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do(t, app, http.MethodPost, "/api/manager/finance", map[string]interface{}{
		"type": "income", "category": "Ventas", "description": "Feria", "amount": "5", "payment_method": "cash", "date": "10/01/2026",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do(t, app, http.MethodGet, "/api/manager/finance?from=ayer", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := do(t, app, http.MethodPost, "/api/manager/finance", map[string]interface{}{
		"type": "expense", "category": "Envíos", "description": "Courier", "amount": "8", "payment_method": "check",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	tx := decode[dto.FinanceTransactionResponse](t, body)

	status, _ = do(t, app, http.MethodDelete, "/api/manager/finance/"+tx.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/api/manager/finance/"+tx.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
