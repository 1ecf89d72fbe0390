package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo recetas sobre PostgreSQL. UNIQUE(product_id, material_id) respalda el rechazo de duplicados.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository pasar pool o tx.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

func (r *BOMRepo) Create(ctx context.Context, e *entity.BOMEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bom_entries (id, product_id, material_id, quantity_needed, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.ProductID, e.MaterialID, e.QuantityNeeded, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateRecipeEntryError{ProductID: e.ProductID, MaterialID: e.MaterialID}
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("quantity_needed", "debe ser mayor que cero")
		}
		return storeErr("insert bom entry", err)
	}
	return nil
}

func (r *BOMRepo) GetByPair(ctx context.Context, productID, materialID string) (*entity.BOMEntry, error) {
	var e entity.BOMEntry
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, material_id, quantity_needed, created_at
		FROM bom_entries WHERE product_id = $1 AND material_id = $2`, productID, materialID,
	).Scan(&e.ID, &e.ProductID, &e.MaterialID, &e.QuantityNeeded, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get bom entry", err)
	}
	return &e, nil
}

// ListByProduct une cada entrada con el material vigente.
func (r *BOMRepo) ListByProduct(ctx context.Context, productID string) ([]entity.BOMLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT b.id, b.product_id, b.material_id, b.quantity_needed, b.created_at,
			m.id, m.name, m.category, m.quantity, m.unit, m.supplier, m.reorder_point, m.cost_per_unit, m.updated_at
		FROM bom_entries b
		JOIN materials m ON m.id = b.material_id
		WHERE b.product_id = $1
		ORDER BY m.name, m.id`, productID)
	if err != nil {
		return nil, storeErr("list bom", err)
	}
	defer rows.Close()
	lines := make([]entity.BOMLine, 0)
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(
			&l.Entry.ID, &l.Entry.ProductID, &l.Entry.MaterialID, &l.Entry.QuantityNeeded, &l.Entry.CreatedAt,
			&l.Material.ID, &l.Material.Name, &l.Material.Category, &l.Material.Quantity, &l.Material.Unit,
			&l.Material.Supplier, &l.Material.ReorderPoint, &l.Material.CostPerUnit, &l.Material.UpdatedAt,
		); err != nil {
			return nil, storeErr("scan bom line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list bom", err)
	}
	return lines, nil
}

func (r *BOMRepo) Delete(ctx context.Context, productID, materialID string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM bom_entries WHERE product_id = $1 AND material_id = $2`, productID, materialID)
	if err != nil {
		return storeErr("delete bom entry", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("entrada de receta", productID+"/"+materialID)
	}
	return nil
}
