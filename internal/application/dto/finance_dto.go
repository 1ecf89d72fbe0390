package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFinanceTransactionRequest body para registrar un ingreso o gasto.
type CreateFinanceTransactionRequest struct {
	Date          string          `json:"date"` // YYYY-MM-DD; vacío = hoy
	Type          string          `json:"type"` // income | expense
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"` // cash | credit_card | debit_card | bank_transfer | check
}

// FinanceTransactionResponse movimiento del libro de caja.
type FinanceTransactionResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FinanceCategoryTotal suma por tipo y categoría.
type FinanceCategoryTotal struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// FinanceMonthTotal tendencia mensual.
type FinanceMonthTotal struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// FinanceOverviewResponse resumen del libro de caja.
type FinanceOverviewResponse struct {
	TransactionCount int                    `json:"transaction_count"`
	TotalIncome      decimal.Decimal        `json:"total_income"`
	TotalExpenses    decimal.Decimal        `json:"total_expenses"`
	NetBalance       decimal.Decimal        `json:"net_balance"`
	AvgAmount        decimal.Decimal        `json:"avg_amount"`
	ByCategory       []FinanceCategoryTotal `json:"by_category"`
	Monthly          []FinanceMonthTotal    `json:"monthly"`
}
