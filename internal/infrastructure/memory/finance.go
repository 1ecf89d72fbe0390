package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

// FinanceRepo libro de caja en memoria.
type FinanceRepo struct {
	s session
}

func (r *FinanceRepo) Create(ctx context.Context, tx *entity.FinanceTransaction) error {
	return r.s.write(func(txn *memdb.Txn) error {
		cp := *tx
		return insert(txn, tableFinance, &cp)
	})
}

func (r *FinanceRepo) List(ctx context.Context, filter repository.FinanceFilter) ([]*entity.FinanceTransaction, error) {
	list := make([]*entity.FinanceTransaction, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableFinance, indexID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			tx := *raw.(*entity.FinanceTransaction)
			if !matchesFinance(&tx, filter) {
				continue
			}
			list = append(list, &tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *FinanceRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(func(txn *memdb.Txn) error {
		raw, err := first(txn, tableFinance, indexID, id)
		if err != nil {
			return err
		}
		if raw == nil {
			return domain.NewNotFoundError("movimiento", id)
		}
		if err := txn.Delete(tableFinance, raw); err != nil {
			return domain.NewStoreFailure("delete finance transaction", err)
		}
		return nil
	})
}

func matchesFinance(tx *entity.FinanceTransaction, f repository.FinanceFilter) bool {
	switch {
	case f.Type != "" && tx.Type != f.Type:
		return false
	case f.Category != "" && tx.Category != f.Category:
		return false
	case !f.From.IsZero() && tx.Date.Before(f.From):
		return false
	case !f.To.IsZero() && tx.Date.After(f.To):
		return false
	}
	return true
}
