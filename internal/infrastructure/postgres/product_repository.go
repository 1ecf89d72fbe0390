package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, category, stock_level, min_stock, unit_price, image_url, description, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido → domain.ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.StockLevel, p.MinStock, p.UnitPrice, p.ImageURL, p.Description, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %q ya existe", domain.ErrConflict, p.SKU)
		}
		if isCheckViolation(err) {
			return domain.NewValidationError("product", "stock y precio no pueden ser negativos")
		}
		return storeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// Update actualiza los datos de catálogo y el stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, category = $4, stock_level = $5, min_stock = $6,
			unit_price = $7, image_url = $8, description = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.StockLevel, p.MinStock, p.UnitPrice, p.ImageURL, p.Description, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %q ya existe", domain.ErrConflict, p.SKU)
		}
		return storeErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("producto", p.ID)
	}
	return nil
}

// UpdateStockLevel fija el stock (usado por producción y pedidos, siempre dentro de la tx).
func (r *ProductRepo) UpdateStockLevel(ctx context.Context, id string, stockLevel int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock_level = $2, updated_at = now() WHERE id = $1`, id, stockLevel)
	if err != nil {
		return storeErr("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("producto", id)
	}
	return nil
}

// List lista productos por nombre.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var where []string
	if filter.InStockOnly {
		where = append(where, "stock_level > 0")
	}
	if filter.LowStockOnly {
		where = append(where, "stock_level <= min_stock")
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storeErr("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list products", err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.StockLevel, &p.MinStock,
		&p.UnitPrice, &p.ImageURL, &p.Description, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
