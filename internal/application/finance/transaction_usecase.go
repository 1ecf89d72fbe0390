// Package finance registra ingresos y gastos y resume el libro de caja.
package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	ledger "github.com/jhoicas/metamorphocus-api/internal/domain/finance"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// TransactionUseCase libro de caja: movimientos de una sola fila, sin transacción explícita.
type TransactionUseCase struct {
	repos repository.UnitOfWork
	log   *logger.Logger
	now   func() time.Time
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repos repository.UnitOfWork, log *logger.Logger) *TransactionUseCase {
	return &TransactionUseCase{
		repos: repos,
		log:   log.With("finance"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// RecordInput entrada de un movimiento. Date cero = hoy.
type RecordInput struct {
	Date          time.Time
	Type          string
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
}

// Record registra un ingreso o gasto.
func (uc *TransactionUseCase) Record(ctx context.Context, in RecordInput) (*dto.FinanceTransactionResponse, error) {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateRecord(in); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = uc.now().Truncate(24 * time.Hour)
	}
	tx := &entity.FinanceTransaction{
		ID:            uuid.New().String(),
		Date:          in.Date,
		Type:          in.Type,
		Category:      in.Category,
		Description:   in.Description,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     uc.now(),
	}
	if err := uc.repos.Finance.Create(ctx, tx); err != nil {
		return nil, err
	}
	uc.log.Info().Str("type", tx.Type).Str("category", tx.Category).
		Str("amount", tx.Amount.String()).Msg("movimiento registrado")
	out := toTransactionResponse(tx)
	return &out, nil
}

// List movimientos más recientes primero.
func (uc *TransactionUseCase) List(ctx context.Context, filter repository.FinanceFilter) ([]dto.FinanceTransactionResponse, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	txs, err := uc.repos.Finance.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FinanceTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out, nil
}

// Delete borra un movimiento.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "requerido")
	}
	if err := uc.repos.Finance.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Msg("movimiento eliminado")
	return nil
}

// Overview ingresos, gastos, balance neto, sumas por categoría y tendencia mensual del período.
func (uc *TransactionUseCase) Overview(ctx context.Context, filter repository.FinanceFilter) (*dto.FinanceOverviewResponse, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	txs, err := uc.repos.Finance.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s := ledger.Summarize(txs)
	out := &dto.FinanceOverviewResponse{
		TransactionCount: s.Count,
		TotalIncome:      s.Income,
		TotalExpenses:    s.Expense,
		NetBalance:       s.Net,
		AvgAmount:        s.AvgAmount,
		ByCategory:       make([]dto.FinanceCategoryTotal, 0, len(s.ByCategory)),
		Monthly:          make([]dto.FinanceMonthTotal, 0, len(s.Monthly)),
	}
	for _, c := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, dto.FinanceCategoryTotal{Type: c.Type, Category: c.Category, Amount: c.Amount})
	}
	for _, m := range s.Monthly {
		out.Monthly = append(out.Monthly, dto.FinanceMonthTotal{Month: m.Month, Income: m.Income, Expense: m.Expense, Net: m.Net()})
	}
	return out, nil
}

func validateRecord(in RecordInput) error {
	switch {
	case !entity.IsValidFinanceType(in.Type):
		return domain.NewValidationError("type", "debe ser income o expense")
	case in.Category == "":
		return domain.NewValidationError("category", "requerida")
	case in.Description == "":
		return domain.NewValidationError("description", "requerida")
	case !in.Amount.IsPositive():
		return domain.NewValidationError("amount", "debe ser mayor que cero")
	case !entity.IsValidPaymentMethod(in.PaymentMethod):
		return domain.NewValidationError("payment_method", "medio de pago desconocido: "+in.PaymentMethod)
	}
	return domain.CheckScale("amount", in.Amount, domain.ScaleMoney)
}

func normalizeFilter(f repository.FinanceFilter) (repository.FinanceFilter, error) {
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	if f.Type != "" && !entity.IsValidFinanceType(f.Type) {
		return f, domain.NewValidationError("type", "debe ser income o expense")
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, domain.NewValidationError("to", "anterior a from")
	}
	return f, nil
}

func toTransactionResponse(tx *entity.FinanceTransaction) dto.FinanceTransactionResponse {
	return dto.FinanceTransactionResponse{
		ID:            tx.ID,
		Date:          tx.Date,
		Type:          tx.Type,
		Category:      tx.Category,
		Description:   tx.Description,
		Amount:        tx.Amount,
		PaymentMethod: tx.PaymentMethod,
		CreatedAt:     tx.CreatedAt,
	}
}
