package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody           = "INVALID_BODY"
	CodeValidation            = "VALIDATION"
	CodeNotFound              = "NOT_FOUND"
	CodeInsufficientMaterials = "INSUFFICIENT_MATERIALS"
	CodeInsufficientStock     = "INSUFFICIENT_STOCK"
	CodeDuplicateRecipeEntry  = "DUPLICATE_RECIPE_ENTRY"
	CodeNoRecipeDefined       = "NO_RECIPE_DEFINED"
	CodeConflict              = "CONFLICT"
	CodeStoreFailure          = "STORE_FAILURE"
	CodeInternal              = "INTERNAL"
)

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}

// writeError traduce errores de dominio a respuestas del panel administrativo.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		validation   *domain.ValidationError
		notFound     *domain.NotFoundError
		materials    *domain.InsufficientMaterialsError
		stock        *domain.InsufficientStockError
		duplicate    *domain.DuplicateRecipeEntryError
		noRecipe     *domain.NoRecipeDefinedError
		storeFailure *domain.StoreFailureError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    CodeValidation,
			Message: validation.Error(),
			Details: fiber.Map{"field": validation.Field, "reason": validation.Reason},
		}
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code:    CodeNotFound,
			Message: notFound.Error(),
			Details: fiber.Map{"entity": notFound.Entity, "id": notFound.ID},
		}
	case errors.As(err, &materials):
		details := make([]dto.ShortfallDTO, 0, len(materials.Shortfalls))
		for _, s := range materials.Shortfalls {
			details = append(details, dto.ShortfallDTO{
				MaterialID:   s.MaterialID,
				MaterialName: s.MaterialName,
				Unit:         s.Unit,
				Required:     s.Required,
				Available:    s.Available,
				Deficit:      s.Deficit,
			})
		}
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeInsufficientMaterials, Message: materials.Error(), Details: details}
	case errors.As(err, &stock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeInsufficientStock, Message: stock.Error(), Details: stockDetails(stock)}
	case errors.As(err, &duplicate):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    CodeDuplicateRecipeEntry,
			Message: duplicate.Error(),
			Details: fiber.Map{"product_id": duplicate.ProductID, "material_id": duplicate.MaterialID},
		}
	case errors.As(err, &noRecipe):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: CodeNoRecipeDefined, Message: noRecipe.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	case errors.As(err, &storeFailure):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{
			Code:      CodeStoreFailure,
			Message:   "falla del almacenamiento, intente de nuevo",
			Retryable: true,
		}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error inesperado"}
	}
}

// writeStorefrontError mapeo reducido de la tienda: 400 validación o sin stock, 404 producto, 500 el resto.
func writeStorefrontError(c *fiber.Ctx, err error) error {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		stock      *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    CodeValidation,
			Message: validation.Error(),
			Details: fiber.Map{"field": validation.Field, "reason": validation.Reason},
		})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    CodeInsufficientStock,
			Message: stock.Error(),
			Details: stockDetails(stock),
		})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    CodeNotFound,
			Message: "producto no encontrado: " + notFound.ID,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:      CodeInternal,
			Message:   "no se pudo registrar el pedido",
			Retryable: domain.IsRetryable(err),
		})
	}
}

func stockDetails(e *domain.InsufficientStockError) fiber.Map {
	return fiber.Map{
		"product_id":   e.ProductID,
		"product_name": e.ProductName,
		"requested":    e.Requested,
		"available":    e.Available,
	}
}
