package sales

import (
	"context"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: todo lo escrito con uow se confirma junto
// o se revierte si fn devuelve error.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// ReceiptGenerator genera el comprobante imprimible de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}
