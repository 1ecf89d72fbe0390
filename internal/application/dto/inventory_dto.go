package dto

import "github.com/shopspring/decimal"

// ProductCostResponse costo y margen unitarios de un producto.
type ProductCostResponse struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	UnitMaterialCost decimal.Decimal `json:"unit_material_cost"`
	UnitLaborCost    decimal.Decimal `json:"unit_labor_cost"` // promedio histórico amortizado
	TotalUnitCost    decimal.Decimal `json:"total_unit_cost"`
	Profit           decimal.Decimal `json:"profit"`
	MarginPct        decimal.Decimal `json:"margin_pct"`
	HasRecipe        bool            `json:"has_recipe"`
	HasLaborData     bool            `json:"has_labor_data"`
}

// ProductReorderDTO producto en o bajo su stock mínimo.
type ProductReorderDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	StockLevel   int64  `json:"stock_level"`
	MinStock     int64  `json:"min_stock"`
	SuggestedQty int64  `json:"suggested_qty"`
}

// MaterialReorderDTO material en o bajo su punto de reorden.
type MaterialReorderDTO struct {
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"` // suggested_qty × cost_per_unit
}

// ReplenishmentResponse lista de reposición del tablero.
type ReplenishmentResponse struct {
	Products  []ProductReorderDTO  `json:"products"`
	Materials []MaterialReorderDTO `json:"materials"`
}
