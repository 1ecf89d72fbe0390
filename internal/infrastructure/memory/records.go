package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var (
	_ repository.BOMRepository        = (*BOMRepo)(nil)
	_ repository.ProductionRepository = (*ProductionRepo)(nil)
	_ repository.LaborRepository      = (*LaborRepo)(nil)
	_ repository.SettingRepository    = (*SettingRepo)(nil)
)

// BOMRepo recetas en memoria. El índice compuesto (producto, material) detecta duplicados.
type BOMRepo struct {
	s session
}

func (r *BOMRepo) Create(ctx context.Context, e *entity.BOMEntry) error {
	return r.s.write(func(txn *memdb.Txn) error {
		existing, err := first(txn, tableBOM, indexPair, e.ProductID, e.MaterialID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateRecipeEntryError{ProductID: e.ProductID, MaterialID: e.MaterialID}
		}
		cp := *e
		return insert(txn, tableBOM, &cp)
	})
}

func (r *BOMRepo) GetByPair(ctx context.Context, productID, materialID string) (*entity.BOMEntry, error) {
	var out *entity.BOMEntry
	err := r.s.read(func(txn *memdb.Txn) error {
		raw, err := first(txn, tableBOM, indexPair, productID, materialID)
		if err != nil || raw == nil {
			return err
		}
		cp := *raw.(*entity.BOMEntry)
		out = &cp
		return nil
	})
	return out, err
}

func (r *BOMRepo) ListByProduct(ctx context.Context, productID string) ([]entity.BOMLine, error) {
	lines := make([]entity.BOMLine, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableBOM, indexProduct, productID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			e := *raw.(*entity.BOMEntry)
			m, err := getMaterial(txn, e.MaterialID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.NewNotFoundError("material", e.MaterialID)
			}
			lines = append(lines, entity.BOMLine{Entry: e, Material: *m})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Material.Name != lines[j].Material.Name {
			return lines[i].Material.Name < lines[j].Material.Name
		}
		return lines[i].Material.ID < lines[j].Material.ID
	})
	return lines, nil
}

func (r *BOMRepo) Delete(ctx context.Context, productID, materialID string) error {
	return r.s.write(func(txn *memdb.Txn) error {
		raw, err := first(txn, tableBOM, indexPair, productID, materialID)
		if err != nil {
			return err
		}
		if raw == nil {
			return domain.NewNotFoundError("entrada de receta", productID+"/"+materialID)
		}
		if err := txn.Delete(tableBOM, raw); err != nil {
			return domain.NewStoreFailure("delete bom entry", err)
		}
		return nil
	})
}

// ProductionRepo historial de producción en memoria.
type ProductionRepo struct {
	s session
}

func (r *ProductionRepo) Create(ctx context.Context, rec *entity.ProductionRecord) error {
	return r.s.write(func(txn *memdb.Txn) error {
		cp := *rec
		return insert(txn, tableProduction, &cp)
	})
}

func (r *ProductionRepo) List(ctx context.Context, productID string, limit int) ([]*entity.ProductionRecord, error) {
	list := make([]*entity.ProductionRecord, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		args := []interface{}{}
		index := indexID
		if productID != "" {
			index, args = indexProduct, append(args, productID)
		}
		rows, err := all(txn, tableProduction, index, args...)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			rec := *raw.(*entity.ProductionRecord)
			list = append(list, &rec)
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].ProductionDate.Equal(list[j].ProductionDate) {
			return list[i].ProductionDate.After(list[j].ProductionDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, err
}

func (r *ProductionRepo) TotalProduced(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableProduction, indexProduct, productID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			total += raw.(*entity.ProductionRecord).QuantityProduced
		}
		return nil
	})
	return total, err
}

// LaborRepo horas de mano de obra en memoria.
type LaborRepo struct {
	s session
}

func (r *LaborRepo) Create(ctx context.Context, e *entity.LaborEntry) error {
	return r.s.write(func(txn *memdb.Txn) error {
		cp := *e
		return insert(txn, tableLabor, &cp)
	})
}

func (r *LaborRepo) List(ctx context.Context, filter repository.LaborFilter) ([]*entity.LaborEntry, error) {
	list := make([]*entity.LaborEntry, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		args := []interface{}{}
		index := indexID
		if filter.ProductID != "" {
			index, args = indexProduct, append(args, filter.ProductID)
		}
		rows, err := all(txn, tableLabor, index, args...)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			e := *raw.(*entity.LaborEntry)
			if filter.Worker != "" && e.Worker != filter.Worker {
				continue
			}
			list = append(list, &e)
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].WorkDate.Equal(list[j].WorkDate) {
			return list[i].WorkDate.After(list[j].WorkDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, err
}

func (r *LaborRepo) TotalHours(ctx context.Context, productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableLabor, indexProduct, productID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			total = total.Add(raw.(*entity.LaborEntry).Hours)
		}
		return nil
	})
	return total, err
}

// SettingRepo ajustes globales en memoria.
type SettingRepo struct {
	s session
}

func (r *SettingRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var out *entity.Setting
	err := r.s.read(func(txn *memdb.Txn) error {
		raw, err := first(txn, tableSettings, indexID, key)
		if err != nil || raw == nil {
			return err
		}
		cp := *raw.(*entity.Setting)
		out = &cp
		return nil
	})
	return out, err
}

func (r *SettingRepo) Upsert(ctx context.Context, s *entity.Setting) error {
	return r.s.write(func(txn *memdb.Txn) error {
		cp := *s
		return insert(txn, tableSettings, &cp)
	})
}
