package sales

import (
	"context"
	"fmt"
)

// ReceiptUseCase comprobante PDF de un pedido.
type ReceiptUseCase struct {
	orders    *OrderUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders *OrderUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, generator: generator}
}

// OrderReceipt devuelve los bytes del PDF. Usa las líneas guardadas (nombre y precio históricos).
func (uc *ReceiptUseCase) OrderReceipt(ctx context.Context, orderID string) ([]byte, error) {
	o, err := uc.orders.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateOrderReceipt(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante del pedido %s: %w", orderID, err)
	}
	return pdf, nil
}
