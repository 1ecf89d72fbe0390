package repository

import (
	"context"
	"time"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

// FinanceFilter filtros del libro de caja. From y To (inclusive) en cero no acotan.
type FinanceFilter struct {
	Type     string
	Category string
	From     time.Time
	To       time.Time
}

// FinanceRepository puerto para ingresos y gastos.
type FinanceRepository interface {
	Create(ctx context.Context, tx *entity.FinanceTransaction) error
	// List más reciente primero (fecha, luego alta).
	List(ctx context.Context, filter FinanceFilter) ([]*entity.FinanceTransaction, error)
	Delete(ctx context.Context, id string) error
}
