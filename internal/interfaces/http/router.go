package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/finance"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Products      *catalog.ProductUseCase
	Materials     *catalog.MaterialUseCase
	BOM           *inventory.BOMUseCase
	Production    *inventory.ProductionUseCase
	Labor         *inventory.LaborUseCase
	Costing       *inventory.CostingUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Orders        *sales.OrderUseCase
	Receipts      *sales.ReceiptUseCase
	Finance       *finance.TransactionUseCase
}

// Router registra las rutas de la API: la tienda en /api y el panel en /api/manager.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Tienda (público)
	storefront := NewStorefrontHandler(deps.Products, deps.Orders)
	api.Get("/products", storefront.ListProducts)
	api.Post("/orders", storefront.PlaceOrder)

	manager := api.Group("/manager")

	// Catálogo
	productHandler := NewProductHandler(deps.Products)
	bomHandler := NewBOMHandler(deps.BOM)
	inventoryHandler := NewInventoryHandler(deps.Replenishment, deps.Costing)
	products := manager.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.Export)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/bom", bomHandler.GetRecipe)
	products.Post("/:id/bom", bomHandler.AddEntry)
	products.Delete("/:id/bom/:material_id", bomHandler.DeleteEntry)
	products.Get("/:id/feasibility", bomHandler.Feasibility)
	products.Get("/:id/cost", inventoryHandler.ProductCost)

	materialHandler := NewMaterialHandler(deps.Materials)
	materials := manager.Group("/materials")
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/export", materialHandler.Export)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)

	// Producción y mano de obra
	productionHandler := NewProductionHandler(deps.Production)
	manager.Post("/production", productionHandler.Produce)
	manager.Get("/production", productionHandler.ListRecords)

	laborHandler := NewLaborHandler(deps.Labor)
	manager.Post("/labor", laborHandler.LogHours)
	manager.Get("/labor", laborHandler.List)
	manager.Get("/settings/hourly-rate", laborHandler.GetHourlyRate)
	manager.Put("/settings/hourly-rate", laborHandler.SetHourlyRate)

	// Tablero
	inv := manager.Group("/inventory")
	inv.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	inv.Get("/costs", inventoryHandler.ListCosts)

	// Pedidos; /stats antes de /:id
	orderHandler := NewOrderHandler(deps.Orders, deps.Receipts)
	orders := manager.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Libro de caja; /overview y /export antes de /:id
	financeHandler := NewFinanceHandler(deps.Finance)
	ledger := manager.Group("/finance")
	ledger.Get("/", financeHandler.List)
	ledger.Post("/", financeHandler.Create)
	ledger.Get("/overview", financeHandler.Overview)
	ledger.Get("/export", financeHandler.Export)
	ledger.Delete("/:id", financeHandler.Delete)
}
