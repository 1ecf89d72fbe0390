package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// LaborUseCase registro de horas y costo de mano de obra amortizado por unidad.
type LaborUseCase struct {
	repos repository.UnitOfWork
	rate  *HourlyRate
	log   *logger.Logger
	now   func() time.Time
}

// NewLaborUseCase construye el caso de uso.
func NewLaborUseCase(repos repository.UnitOfWork, rate *HourlyRate, log *logger.Logger) *LaborUseCase {
	return &LaborUseCase{
		repos: repos,
		rate:  rate,
		log:   log.With("labor"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// LogInput entrada para registrar horas. WorkDate cero = hoy.
type LogInput struct {
	ProductID string
	Worker    string
	Hours     decimal.Decimal
	WorkDate  time.Time
	Notes     string
}

// LogHours registra horas trabajadas sobre un producto existente.
func (uc *LaborUseCase) LogHours(ctx context.Context, in LogInput) (*dto.LaborEntryResponse, error) {
	in.Worker = strings.TrimSpace(in.Worker)
	switch {
	case in.ProductID == "":
		return nil, domain.NewValidationError("product_id", "requerido")
	case in.Worker == "":
		return nil, domain.NewValidationError("worker", "requerido")
	case !in.Hours.IsPositive():
		return nil, domain.NewValidationError("hours", "debe ser mayor que cero")
	}
	if err := domain.CheckScale("hours", in.Hours, domain.ScaleHours); err != nil {
		return nil, err
	}
	product, err := uc.repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("producto", in.ProductID)
	}
	if in.WorkDate.IsZero() {
		in.WorkDate = uc.now().Truncate(24 * time.Hour)
	}
	entry := &entity.LaborEntry{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Worker:    in.Worker,
		Hours:     in.Hours,
		WorkDate:  in.WorkDate,
		Notes:     in.Notes,
		CreatedAt: uc.now(),
	}
	if err := uc.repos.Labor.Create(ctx, entry); err != nil {
		return nil, err
	}
	rate, err := uc.rate.Get(ctx)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", in.ProductID).Str("worker", in.Worker).
		Str("hours", in.Hours.String()).Msg("horas registradas")
	out := toLaborEntryResponse(entry, rate)
	return &out, nil
}

// List historial de horas con su costo a la tarifa vigente (no a la del momento del registro).
func (uc *LaborUseCase) List(ctx context.Context, filter repository.LaborFilter) (*dto.LaborListResponse, error) {
	entries, err := uc.repos.Labor.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rate, err := uc.rate.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.LaborListResponse{
		Items:      make([]dto.LaborEntryResponse, 0, len(entries)),
		HourlyRate: rate,
		TotalHours: decimal.Zero,
		TotalCost:  decimal.Zero,
	}
	for _, e := range entries {
		item := toLaborEntryResponse(e, rate)
		out.Items = append(out.Items, item)
		out.TotalHours = out.TotalHours.Add(e.Hours)
		out.TotalCost = out.TotalCost.Add(item.Cost)
	}
	return out, nil
}

// HourlyRate tarifa vigente.
func (uc *LaborUseCase) HourlyRate(ctx context.Context) (decimal.Decimal, error) {
	return uc.rate.Get(ctx)
}

// SetHourlyRate fija la tarifa global (última escritura gana).
func (uc *LaborUseCase) SetHourlyRate(ctx context.Context, rate decimal.Decimal) error {
	if err := uc.rate.Set(ctx, rate); err != nil {
		return err
	}
	uc.log.Info().Str("hourly_rate", rate.String()).Msg("tarifa por hora actualizada")
	return nil
}

func toLaborEntryResponse(e *entity.LaborEntry, rate decimal.Decimal) dto.LaborEntryResponse {
	return dto.LaborEntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Worker:    e.Worker,
		Hours:     e.Hours,
		WorkDate:  e.WorkDate,
		Notes:     e.Notes,
		Cost:      e.Hours.Mul(rate),
	}
}
