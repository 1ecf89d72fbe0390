package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_name, customer_email, customer_phone, total_amount, status, notes, created_at`

var orderSortClauses = map[string]string{
	repository.OrderSortNewest:  "created_at DESC, id",
	repository.OrderSortOldest:  "created_at ASC, id",
	repository.OrderSortHighest: "total_amount DESC, created_at DESC",
	repository.OrderSortLowest:  "total_amount ASC, created_at DESC",
}

// OrderRepo pedidos y sus líneas sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y todas las líneas. Usar dentro de la transacción del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.TotalAmount, o.Status, o.Notes, o.CreatedAt,
	)
	if err != nil {
		return storeErr("insert order", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_line_items (id, order_id, product_id, product_name, quantity, price, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.Price, it.Position, it.CreatedAt,
		)
		if err != nil {
			return storeErr("insert order line item", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get order", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price, position, created_at
		FROM order_line_items WHERE order_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, storeErr("list order line items", err)
	}
	defer rows.Close()
	o.Items = make([]entity.OrderLineItem, 0)
	for rows.Next() {
		var it entity.OrderLineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.Position, &it.CreatedAt); err != nil {
			return nil, storeErr("scan order line item", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list order line items", err)
	}
	return o, nil
}

func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	order, ok := orderSortClauses[filter.Sort]
	if !ok {
		order = orderSortClauses[repository.OrderSortNewest]
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY `+order, filter.Status)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storeErr("scan order", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list orders", err)
	}
	return list, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return storeErr("update order status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("pedido", id)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.TotalAmount, &o.Status, &o.Notes, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
