package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

const financeColumns = `id, tx_date, type, category, description, amount, payment_method, created_at`

// FinanceRepo libro de caja sobre PostgreSQL.
type FinanceRepo struct {
	q Querier
}

// NewFinanceRepository pasar pool o tx.
func NewFinanceRepository(q Querier) *FinanceRepo {
	return &FinanceRepo{q: q}
}

func (r *FinanceRepo) Create(ctx context.Context, tx *entity.FinanceTransaction) error {
	_, err := r.q.Exec(ctx, `INSERT INTO finance_transactions (`+financeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.Date, tx.Type, tx.Category, tx.Description, tx.Amount, tx.PaymentMethod, tx.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("amount", "debe ser mayor que cero")
		}
		return storeErr("insert finance transaction", err)
	}
	return nil
}

func (r *FinanceRepo) List(ctx context.Context, filter repository.FinanceFilter) ([]*entity.FinanceTransaction, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if !filter.From.IsZero() {
		add("tx_date >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("tx_date <= $%d", filter.To)
	}
	query := `SELECT ` + financeColumns + ` FROM finance_transactions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY tx_date DESC, created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list finance", err)
	}
	defer rows.Close()
	list := make([]*entity.FinanceTransaction, 0)
	for rows.Next() {
		var tx entity.FinanceTransaction
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Type, &tx.Category, &tx.Description, &tx.Amount, &tx.PaymentMethod, &tx.CreatedAt); err != nil {
			return nil, storeErr("scan finance transaction", err)
		}
		list = append(list, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list finance", err)
	}
	return list, nil
}

func (r *FinanceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM finance_transactions WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete finance transaction", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("movimiento", id)
	}
	return nil
}
