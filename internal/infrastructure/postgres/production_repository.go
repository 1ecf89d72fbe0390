package postgres

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo historial de producción (solo inserción).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository pasar pool o tx.
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

func (r *ProductionRepo) Create(ctx context.Context, rec *entity.ProductionRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_records (id, product_id, quantity_produced, material_cost, produced_by, production_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.ProductID, rec.QuantityProduced, rec.MaterialCost, rec.ProducedBy, rec.ProductionDate, rec.Notes, rec.CreatedAt,
	)
	if err != nil {
		return storeErr("insert production record", err)
	}
	return nil
}

func (r *ProductionRepo) List(ctx context.Context, productID string, limit int) ([]*entity.ProductionRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, quantity_produced, material_cost, produced_by, production_date, notes, created_at
		FROM production_records
		WHERE ($1 = '' OR product_id = $1)
		ORDER BY production_date DESC, created_at DESC
		LIMIT $2`, productID, limit)
	if err != nil {
		return nil, storeErr("list production records", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductionRecord, 0)
	for rows.Next() {
		var rec entity.ProductionRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.QuantityProduced, &rec.MaterialCost,
			&rec.ProducedBy, &rec.ProductionDate, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, storeErr("scan production record", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list production records", err)
	}
	return list, nil
}

func (r *ProductionRepo) TotalProduced(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_produced), 0)::BIGINT FROM production_records WHERE product_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return 0, storeErr("sum production", err)
	}
	return total, nil
}
