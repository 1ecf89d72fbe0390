package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", money(decimal.Zero))
	assert.Equal(t, "$12.50", money(decimal.RequireFromString("12.5")))
	assert.Equal(t, "$1,234,567.89", money(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "-$1,000.00", money(decimal.NewFromInt(-1000)))
}

func TestGenerateOrderReceipt(t *testing.T) {
	order := &entity.Order{
		ID:            "5f1c7a9e-0000-4000-8000-000000000001",
		CustomerName:  "Ana Pérez",
		CustomerEmail: "ana@example.com",
		TotalAmount:   decimal.RequireFromString("37.50"),
		Status:        entity.OrderStatusPending,
		CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Items: []entity.OrderLineItem{
			{ProductName: "Lavender Candle", Quantity: 3, Price: decimal.RequireFromString("12.50")},
		},
	}
	out, err := NewReceiptGenerator("").GenerateOrderReceipt(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
