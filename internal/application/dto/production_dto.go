package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduceRequest body para POST /api/manager/production.
type ProduceRequest struct {
	ProductID      string `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	ProducedBy     string `json:"produced_by"`
	ProductionDate string `json:"production_date"` // YYYY-MM-DD; vacío = hoy
	Notes          string `json:"notes"`
}

// ProductionRecordResponse registro de producción.
type ProductionRecordResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityProduced int64           `json:"quantity_produced"`
	MaterialCost     decimal.Decimal `json:"material_cost"`
	ProducedBy       string          `json:"produced_by"`
	ProductionDate   time.Time       `json:"production_date"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ProductionResponse resultado de una corrida confirmada.
type ProductionResponse struct {
	Record        ProductionRecordResponse `json:"record"`
	NewStockLevel int64                    `json:"new_stock_level"`
	Consumed      []ShortfallDTO           `json:"consumed"` // required = consumido, available = antes de consumir
}
