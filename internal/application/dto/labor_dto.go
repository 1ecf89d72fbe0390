package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogLaborRequest body para registrar horas.
type LogLaborRequest struct {
	ProductID string          `json:"product_id"`
	Worker    string          `json:"worker"`
	Hours     decimal.Decimal `json:"hours"`
	WorkDate  string          `json:"work_date"` // YYYY-MM-DD; vacío = hoy
	Notes     string          `json:"notes"`
}

// LaborEntryResponse horas registradas con su costo a la tarifa vigente.
type LaborEntryResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Worker    string          `json:"worker"`
	Hours     decimal.Decimal `json:"hours"`
	WorkDate  time.Time       `json:"work_date"`
	Notes     string          `json:"notes,omitempty"`
	Cost      decimal.Decimal `json:"cost"`
}

// LaborListResponse historial con totales.
type LaborListResponse struct {
	Items      []LaborEntryResponse `json:"items"`
	HourlyRate decimal.Decimal      `json:"hourly_rate"`
	TotalHours decimal.Decimal      `json:"total_hours"`
	TotalCost  decimal.Decimal      `json:"total_cost"`
}

// HourlyRateRequest body para fijar la tarifa por hora.
type HourlyRateRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// HourlyRateResponse tarifa vigente.
type HourlyRateResponse struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}
