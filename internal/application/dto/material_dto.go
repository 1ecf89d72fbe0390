package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name         string          `json:"material_name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Supplier     string          `json:"supplier"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
}

// UpdateMaterialRequest campos opcionales a modificar (conteo manual incluido).
type UpdateMaterialRequest struct {
	Name         *string          `json:"material_name"`
	Category     *string          `json:"category"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit"`
	Supplier     *string          `json:"supplier"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"material_name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Supplier     string          `json:"supplier"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	NeedsReorder bool            `json:"needs_reorder"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
