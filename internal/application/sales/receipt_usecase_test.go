package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/domain/entity"
)

type fakeGenerator struct {
	got *entity.Order
}

func (f *fakeGenerator) GenerateOrderReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	f.got = o
	return []byte("%PDF-fake"), nil
}

func TestOrderReceipt(t *testing.T) {
	uc, repos := setup(t)
	candle := seedProduct(t, repos, "Lavender Candle", 3, "10")
	ctx := context.Background()
	out, err := uc.PlaceOrder(ctx, order(dto.OrderItemRequest{ProductID: candle.ID, Quantity: 1}))
	require.NoError(t, err)

	gen := &fakeGenerator{}
	receipts := sales.NewReceiptUseCase(uc, gen)
	pdf, err := receipts.OrderReceipt(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, gen.got)
	assert.Len(t, gen.got.Items, 1)

	_, err = receipts.OrderReceipt(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
