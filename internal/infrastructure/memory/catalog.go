package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MaterialRepository = (*MaterialRepo)(nil)
)

// ProductRepo productos en memoria. Los objetos guardados nunca se mutan: se reemplazan.
type ProductRepo struct {
	s session
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.StockLevel < 0 || p.MinStock < 0 || p.UnitPrice.IsNegative() {
		return domain.NewValidationError("product", "stock y precio no pueden ser negativos")
	}
	return r.s.write(func(txn *memdb.Txn) error {
		if err := checkSKU(txn, p); err != nil {
			return err
		}
		cp := *p
		return insert(txn, tableProducts, &cp)
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(func(txn *memdb.Txn) error {
		p, err := getProduct(txn, id)
		out = p
		return err
	})
	return out, err
}

// GetForUpdate dentro de Run la transacción ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.s.write(func(txn *memdb.Txn) error {
		cur, err := getProduct(txn, p.ID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NewNotFoundError("producto", p.ID)
		}
		if err := checkSKU(txn, p); err != nil {
			return err
		}
		cp := *p
		return insert(txn, tableProducts, &cp)
	})
}

func (r *ProductRepo) UpdateStockLevel(ctx context.Context, id string, stockLevel int64) error {
	if stockLevel < 0 {
		return domain.NewStoreFailure("update product stock", fmt.Errorf("stock_level negativo para %s", id))
	}
	return r.s.write(func(txn *memdb.Txn) error {
		cur, err := getProduct(txn, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NewNotFoundError("producto", id)
		}
		cur.StockLevel = stockLevel
		cur.UpdatedAt = time.Now().UTC()
		return insert(txn, tableProducts, cur)
	})
}

func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableProducts, indexID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			p := *raw.(*entity.Product)
			if filter.InStockOnly && p.StockLevel <= 0 {
				continue
			}
			if filter.LowStockOnly && !p.IsLowStock() {
				continue
			}
			list = append(list, &p)
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func getProduct(txn *memdb.Txn, id string) (*entity.Product, error) {
	raw, err := first(txn, tableProducts, indexID, id)
	if err != nil || raw == nil {
		return nil, err
	}
	cp := *raw.(*entity.Product)
	return &cp, nil
}

func checkSKU(txn *memdb.Txn, p *entity.Product) error {
	if p.SKU == "" {
		return nil
	}
	rows, err := all(txn, tableProducts, indexID)
	if err != nil {
		return err
	}
	for _, raw := range rows {
		other := raw.(*entity.Product)
		if other.ID != p.ID && other.SKU == p.SKU {
			return fmt.Errorf("%w: sku %q ya existe", domain.ErrConflict, p.SKU)
		}
	}
	return nil
}

// MaterialRepo materias primas en memoria.
type MaterialRepo struct {
	s session
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	if m.Quantity.IsNegative() || m.ReorderPoint.IsNegative() || m.CostPerUnit.IsNegative() {
		return domain.NewValidationError("material", "cantidades y costos no pueden ser negativos")
	}
	return r.s.write(func(txn *memdb.Txn) error {
		cp := *m
		return insert(txn, tableMaterials, &cp)
	})
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.s.read(func(txn *memdb.Txn) error {
		m, err := getMaterial(txn, id)
		out = m
		return err
	})
	return out, err
}

func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	return r.s.write(func(txn *memdb.Txn) error {
		cur, err := getMaterial(txn, m.ID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NewNotFoundError("material", m.ID)
		}
		cp := *m
		return insert(txn, tableMaterials, &cp)
	})
}

func (r *MaterialRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domain.NewStoreFailure("update material quantity", fmt.Errorf("cantidad negativa para %s", id))
	}
	return r.s.write(func(txn *memdb.Txn) error {
		cur, err := getMaterial(txn, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NewNotFoundError("material", id)
		}
		cur.Quantity = quantity
		cur.UpdatedAt = time.Now().UTC()
		return insert(txn, tableMaterials, cur)
	})
}

func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	list := make([]*entity.Material, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableMaterials, indexID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			m := *raw.(*entity.Material)
			if filter.LowStockOnly && !m.NeedsReorder() {
				continue
			}
			list = append(list, &m)
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func getMaterial(txn *memdb.Txn, id string) (*entity.Material, error) {
	raw, err := first(txn, tableMaterials, indexID, id)
	if err != nil || raw == nil {
		return nil, err
	}
	cp := *raw.(*entity.Material)
	return &cp, nil
}
