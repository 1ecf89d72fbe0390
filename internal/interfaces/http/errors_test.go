package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"validación", domain.NewValidationError("quantity", "debe ser mayor que cero"), fiber.StatusBadRequest, CodeValidation, false},
		{"no encontrado", domain.NewNotFoundError("producto", "p1"), fiber.StatusNotFound, CodeNotFound, false},
		{"materiales", &domain.InsufficientMaterialsError{ProductID: "p1"}, fiber.StatusConflict, CodeInsufficientMaterials, false},
		{"stock", &domain.InsufficientStockError{ProductID: "p1"}, fiber.StatusConflict, CodeInsufficientStock, false},
		{"receta duplicada", &domain.DuplicateRecipeEntryError{}, fiber.StatusConflict, CodeDuplicateRecipeEntry, false},
		{"sin receta", &domain.NoRecipeDefinedError{ProductID: "p1"}, fiber.StatusUnprocessableEntity, CodeNoRecipeDefined, false},
		{"conflicto", fmt.Errorf("sku: %w", domain.ErrConflict), fiber.StatusConflict, CodeConflict, false},
		{"almacenamiento", domain.NewStoreFailure("commit", errors.New("conexión cerrada")), fiber.StatusServiceUnavailable, CodeStoreFailure, true},
		{"inesperado", errors.New("boom"), fiber.StatusInternalServerError, CodeInternal, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.retryable, body.Retryable)
		})
	}
}

func TestMapError_NoExponeDetalleInterno(t *testing.T) {
	_, body := mapError(domain.NewStoreFailure("commit", errors.New("password authentication failed")))
	assert.NotContains(t, body.Message, "password")
}
