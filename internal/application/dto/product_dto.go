package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name        string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	StockLevel  int64           `json:"stock_level"`
	MinStock    int64           `json:"min_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
}

// UpdateProductRequest campos opcionales a modificar.
type UpdateProductRequest struct {
	Name        *string          `json:"product_name"`
	SKU         *string          `json:"sku"`
	Category    *string          `json:"category"`
	StockLevel  *int64           `json:"stock_level"`
	MinStock    *int64           `json:"min_stock"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	ImageURL    *string          `json:"image_url"`
	Description *string          `json:"description"`
}

// ProductResponse salida de un producto (panel administrativo).
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	StockLevel  int64           `json:"stock_level"`
	MinStock    int64           `json:"min_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
	LowStock    bool            `json:"low_stock"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StorefrontProduct producto visible en la tienda (solo stock > 0).
type StorefrontProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"desc"`
	Stock       int64           `json:"stock"`
}
