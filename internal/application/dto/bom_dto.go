package dto

import "github.com/shopspring/decimal"

// AddBOMEntryRequest body para agregar un material a la receta de un producto.
type AddBOMEntryRequest struct {
	MaterialID     string          `json:"material_id"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
}

// BOMLineResponse línea de receta con el costo vigente del material.
type BOMLineResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	MaterialID     string          `json:"material_id"`
	MaterialName   string          `json:"material_name"`
	Unit           string          `json:"unit"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	LineCost       decimal.Decimal `json:"line_cost"` // cost_per_unit × quantity_needed
}

// BOMResponse receta completa con su costo unitario de materiales.
type BOMResponse struct {
	ProductID        string            `json:"product_id"`
	Lines            []BOMLineResponse `json:"lines"`
	UnitMaterialCost decimal.Decimal   `json:"unit_material_cost"`
}

// ShortfallDTO detalle por material de una verificación de factibilidad.
type ShortfallDTO struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Deficit      decimal.Decimal `json:"deficit"`
}

// FeasibilityResponse resultado de CheckFeasibility para una cantidad objetivo.
type FeasibilityResponse struct {
	ProductID      string         `json:"product_id"`
	TargetQuantity int64          `json:"target_quantity"`
	Feasible       bool           `json:"feasible"`
	Shortfalls     []ShortfallDTO `json:"shortfalls"`
}
