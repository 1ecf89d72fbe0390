package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, category, quantity, unit, supplier, reorder_point, cost_per_unit, updated_at`

// MaterialRepo materias primas sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository pasar pool o tx.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Category, m.Quantity, m.Unit, m.Supplier, m.ReorderPoint, m.CostPerUnit, m.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("material", "cantidades y costos no pueden ser negativos")
		}
		return storeErr("insert material", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) get(ctx context.Context, query, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get material", err)
	}
	return m, nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, category = $3, quantity = $4, unit = $5, supplier = $6,
			reorder_point = $7, cost_per_unit = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Category, m.Quantity, m.Unit, m.Supplier, m.ReorderPoint, m.CostPerUnit, m.UpdatedAt,
	)
	if err != nil {
		return storeErr("update material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("material", m.ID)
	}
	return nil
}

// UpdateQuantity fija la cantidad disponible. La base rechaza valores negativos (CHECK).
func (r *MaterialRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE materials SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return storeErr("update material quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("material", id)
	}
	return nil
}

func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials`
	if filter.LowStockOnly {
		query += ` WHERE quantity <= reorder_point`
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list materials", err)
	}
	defer rows.Close()
	list := make([]*entity.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, storeErr("scan material", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list materials", err)
	}
	return list, nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Quantity, &m.Unit, &m.Supplier,
		&m.ReorderPoint, &m.CostPerUnit, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
