package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
	"github.com/jhoicas/metamorphocus-api/internal/infrastructure/memory"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

func TestMaterial_CRUD(t *testing.T) {
	store, err := memory.New()
	require.NoError(t, err)
	uc := catalog.NewMaterialUseCase(store, store.Repos(), logger.Nop())
	ctx := context.Background()

	m, err := uc.Create(ctx, dto.CreateMaterialRequest{
		Name: "Soy Wax", Unit: "kg", Quantity: d("3"), ReorderPoint: d("5"), CostPerUnit: d("4.20"),
	})
	require.NoError(t, err)
	assert.True(t, m.NeedsReorder)

	qty := d("12.5")
	up, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.False(t, up.NeedsReorder)
	assert.True(t, d("4.20").Equal(up.CostPerUnit))

	neg := d("-1")
	_, err = uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Quantity: &neg})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	got, err := uc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, d("12.5").Equal(got.Quantity))

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Name: ""})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	low, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, low)
}
