package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.LaborRepository = (*LaborRepo)(nil)

// LaborRepo horas de mano de obra (solo inserción).
type LaborRepo struct {
	q Querier
}

// NewLaborRepository pasar pool o tx.
func NewLaborRepository(q Querier) *LaborRepo {
	return &LaborRepo{q: q}
}

func (r *LaborRepo) Create(ctx context.Context, e *entity.LaborEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO labor_entries (id, product_id, worker, hours, work_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.ProductID, e.Worker, e.Hours, e.WorkDate, e.Notes, e.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("hours", "debe ser mayor que cero")
		}
		return storeErr("insert labor entry", err)
	}
	return nil
}

// List más reciente primero.
func (r *LaborRepo) List(ctx context.Context, filter repository.LaborFilter) ([]*entity.LaborEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.Worker != "" {
		args = append(args, filter.Worker)
		where = append(where, fmt.Sprintf("worker = $%d", len(args)))
	}
	query := `SELECT id, product_id, worker, hours, work_date, notes, created_at FROM labor_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY work_date DESC, created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list labor", err)
	}
	defer rows.Close()
	list := make([]*entity.LaborEntry, 0)
	for rows.Next() {
		var e entity.LaborEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Worker, &e.Hours, &e.WorkDate, &e.Notes, &e.CreatedAt); err != nil {
			return nil, storeErr("scan labor entry", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list labor", err)
	}
	return list, nil
}

func (r *LaborRepo) TotalHours(ctx context.Context, productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(hours), 0) FROM labor_entries WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return decimal.Zero, storeErr("sum labor hours", err)
	}
	return total, nil
}
