package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// OrderPlacedMessage mensaje de confirmación que devuelve la tienda.
const OrderPlacedMessage = "Order placed successfully!"

// OrderUseCase pedidos de clientes: alta atómica con descuento de stock y gestión posterior.
type OrderUseCase struct {
	txRunner TxRunner
	repos    repository.UnitOfWork
	log      *logger.Logger
	now      func() time.Time
}

// NewOrderUseCase repos son repositorios fuera de transacción (lecturas y cambio de estado).
func NewOrderUseCase(txRunner TxRunner, repos repository.UnitOfWork, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log.With("orders"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder valida cada línea en el orden recibido (producto existente, stock suficiente
// considerando la cantidad acumulada del mismo producto) y confirma en una sola transacción:
// pedido pending, una línea por ítem con nombre y precio copiados, y descuento de stock.
// La primera línea inválida aborta todo; no se crea ningún pedido parcial.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "orders.place", trace.WithAttributes(
		attribute.Int("order.lines", len(in.Items)),
	))
	defer span.End()

	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		products, err := lockProducts(ctx, uow, in.Items)
		if err != nil {
			return err
		}

		now := uc.now()
		order = &entity.Order{
			ID:            uuid.New().String(),
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			TotalAmount:   decimal.Zero,
			Status:        entity.OrderStatusPending,
			Notes:         in.Notes,
			CreatedAt:     now,
			Items:         make([]entity.OrderLineItem, 0, len(in.Items)),
		}
		requested := make(map[string]int64, len(products))
		for _, it := range in.Items {
			p := products[it.ProductID]
			if p == nil {
				return domain.NewNotFoundError("producto", it.ProductID)
			}
			requested[p.ID] += it.Quantity
			if requested[p.ID] > p.StockLevel {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   requested[p.ID],
					Available:   p.StockLevel,
				}
			}
			line := entity.OrderLineItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       p.UnitPrice,
				Position:    len(order.Items),
				CreatedAt:   now,
			}
			order.Items = append(order.Items, line)
			order.TotalAmount = order.TotalAmount.Add(line.Subtotal())
		}

		if err := uow.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, id := range sortedKeys(requested) {
			if err := uow.Products.UpdateStockLevel(ctx, id, products[id].StockLevel-requested[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		failSpan(span, err)
		ev := uc.log.Warn()
		if domain.IsRetryable(err) {
			ev = uc.log.Error()
		}
		ev.Err(err).Str("customer_email", in.CustomerEmail).Int("lines", len(in.Items)).Msg("pedido rechazado")
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", order.ID))
	uc.log.Info().
		Str("order_id", order.ID).
		Str("total", order.TotalAmount.String()).
		Int("lines", len(order.Items)).
		Msg("pedido confirmado")
	return &dto.PlaceOrderResponse{
		Success: true,
		OrderID: order.ID,
		Total:   order.TotalAmount,
		Message: OrderPlacedMessage,
	}, nil
}

// GetOrder pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(o)
	return &out, nil
}

// ListOrders pedidos sin líneas. status vacío = todos.
func (uc *OrderUseCase) ListOrders(ctx context.Context, status, sortBy string) ([]dto.OrderResponse, error) {
	if status != "" && !entity.IsValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", "estado desconocido: "+status)
	}
	switch sortBy {
	case "", repository.OrderSortNewest, repository.OrderSortOldest, repository.OrderSortHighest, repository.OrderSortLowest:
	default:
		return nil, domain.NewValidationError("sort", "orden desconocido: "+sortBy)
	}
	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{Status: status, Sort: sortBy})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus cambia la etiqueta de estado. Las transiciones son libres entre los cuatro estados
// y cancelar NO devuelve el stock descontado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if id == "" {
		return nil, domain.NewValidationError("order_id", "requerido")
	}
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", "estado desconocido: "+status)
	}
	if err := uc.repos.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("status", status).Msg("estado de pedido actualizado")
	return uc.GetOrder(ctx, id)
}

// Stats conteo por estado e ingresos de pedidos no cancelados.
func (uc *OrderUseCase) Stats(ctx context.Context) (*dto.OrderStatsResponse, error) {
	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.OrderStatsResponse{
		TotalOrders: len(orders),
		ByStatus:    make(map[string]int, len(entity.OrderStatuses)),
		Revenue:     decimal.Zero,
		AvgOrder:    decimal.Zero,
	}
	for _, s := range entity.OrderStatuses {
		out.ByStatus[s] = 0
	}
	billable := 0
	for _, o := range orders {
		out.ByStatus[o.Status]++
		if o.Status != entity.OrderStatusCancelled {
			out.Revenue = out.Revenue.Add(o.TotalAmount)
			billable++
		}
	}
	if billable > 0 {
		out.AvgOrder = out.Revenue.Div(decimal.NewFromInt(int64(billable))).Round(2)
	}
	return out, nil
}

func (uc *OrderUseCase) getOrder(ctx context.Context, id string) (*entity.Order, error) {
	if id == "" {
		return nil, domain.NewValidationError("order_id", "requerido")
	}
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFoundError("pedido", id)
	}
	return o, nil
}

func validatePlaceOrder(in dto.PlaceOrderRequest) error {
	if in.CustomerName == "" {
		return domain.NewValidationError("customer_name", "requerido")
	}
	if in.CustomerEmail == "" {
		return domain.NewValidationError("customer_email", "requerido")
	}
	if len(in.Items) == 0 {
		return domain.NewValidationError("items", "el carrito está vacío")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.NewValidationError("items.id", "requerido")
		}
		if it.Quantity <= 0 {
			return domain.NewValidationError("items.qty", "debe ser mayor que cero")
		}
	}
	return nil
}

// lockProducts bloquea cada producto distinto en orden ascendente de ID.
// Un producto inexistente queda como nil para reportarlo en el orden de las líneas.
func lockProducts(ctx context.Context, uow repository.UnitOfWork, items []dto.OrderItemRequest) (map[string]*entity.Product, error) {
	ids := make(map[string]int64, len(items))
	for _, it := range items {
		ids[it.ProductID] = 0
	}
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range sortedKeys(ids) {
		p, err := uow.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderLineItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}
