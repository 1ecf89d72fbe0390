package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// HourlyRate única fuente de verdad de la tarifa por hora de mano de obra.
// Se guarda como ajuste global (settings.hourly_rate); escrituras concurrentes: la última gana.
// Se lee en cada cálculo y se pasa explícitamente al asignador; nunca se congela en LaborEntry.
type HourlyRate struct {
	settings repository.SettingRepository
	fallback decimal.Decimal
}

// NewHourlyRate fallback se usa mientras el ajuste no exista.
func NewHourlyRate(settings repository.SettingRepository, fallback decimal.Decimal) *HourlyRate {
	return &HourlyRate{settings: settings, fallback: fallback}
}

// Get devuelve la tarifa vigente.
func (r *HourlyRate) Get(ctx context.Context) (decimal.Decimal, error) {
	s, err := r.settings.Get(ctx, entity.SettingHourlyRate)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil {
		return r.fallback, nil
	}
	rate, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, domain.NewStoreFailure("leer tarifa por hora", fmt.Errorf("valor almacenado inválido %q: %w", s.Value, err))
	}
	return rate, nil
}

// Set fija la tarifa. Debe ser >= 0.
func (r *HourlyRate) Set(ctx context.Context, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return domain.NewValidationError("hourly_rate", "no puede ser negativa")
	}
	return r.settings.Upsert(ctx, &entity.Setting{
		Key:       entity.SettingHourlyRate,
		Value:     rate.String(),
		UpdatedAt: time.Now().UTC(),
	})
}
