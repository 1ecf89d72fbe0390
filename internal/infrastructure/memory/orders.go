package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria. Las líneas viven en su propia tabla, como en PostgreSQL.
type OrderRepo struct {
	s session
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.s.write(func(txn *memdb.Txn) error {
		head := *o
		head.Items = nil
		if err := insert(txn, tableOrders, &head); err != nil {
			return err
		}
		for _, it := range o.Items {
			line := it
			line.OrderID = o.ID
			if err := insert(txn, tableOrderItems, &line); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.read(func(txn *memdb.Txn) error {
		raw, err := first(txn, tableOrders, indexID, id)
		if err != nil || raw == nil {
			return err
		}
		o := *raw.(*entity.Order)
		rows, err := all(txn, tableOrderItems, indexOrder, id)
		if err != nil {
			return err
		}
		o.Items = make([]entity.OrderLineItem, 0, len(rows))
		for _, it := range rows {
			o.Items = append(o.Items, *it.(*entity.OrderLineItem))
		}
		sort.SliceStable(o.Items, func(i, j int) bool { return o.Items[i].Position < o.Items[j].Position })
		out = &o
		return nil
	})
	return out, err
}

func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	list := make([]*entity.Order, 0)
	err := r.s.read(func(txn *memdb.Txn) error {
		rows, err := all(txn, tableOrders, indexID)
		if err != nil {
			return err
		}
		for _, raw := range rows {
			o := *raw.(*entity.Order)
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			list = append(list, &o)
		}
		return nil
	})
	sort.SliceStable(list, orderLess(list, filter.Sort))
	return list, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.s.write(func(txn *memdb.Txn) error {
		raw, err := first(txn, tableOrders, indexID, id)
		if err != nil {
			return err
		}
		if raw == nil {
			return domain.NewNotFoundError("pedido", id)
		}
		o := *raw.(*entity.Order)
		o.Status = status
		return insert(txn, tableOrders, &o)
	})
}

func orderLess(list []*entity.Order, sortBy string) func(i, j int) bool {
	switch sortBy {
	case repository.OrderSortOldest:
		return func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) }
	case repository.OrderSortHighest:
		return func(i, j int) bool { return list[i].TotalAmount.GreaterThan(list[j].TotalAmount) }
	case repository.OrderSortLowest:
		return func(i, j int) bool { return list[i].TotalAmount.LessThan(list[j].TotalAmount) }
	default:
		return func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) }
	}
}
