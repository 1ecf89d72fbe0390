package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
)

// BOMHandler recetas de producto.
type BOMHandler struct {
	uc *inventory.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *inventory.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// GetRecipe godoc
// @Summary      Receta del producto
// @Tags         bom
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/products/{id}/bom [get]
func (h *BOMHandler) GetRecipe(c *fiber.Ctx) error {
	out, err := h.uc.GetRecipe(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddEntry godoc
// @Summary      Agregar material a la receta
// @Description  Si el material ya está en la receta responde 409; hay que borrar la entrada antes.
// @Tags         bom
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AddBOMEntryRequest  true  "material_id, quantity_needed"
// @Success      201   {object}  dto.BOMLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/products/{id}/bom [post]
func (h *BOMHandler) AddEntry(c *fiber.Ctx) error {
	var in dto.AddBOMEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddEntry(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteEntry godoc
// @Summary      Quitar material de la receta
// @Tags         bom
// @Param        id           path  string  true  "ID del producto"
// @Param        material_id  path  string  true  "ID del material"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/products/{id}/bom/{material_id} [delete]
func (h *BOMHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.uc.DeleteEntry(c.UserContext(), c.Params("id"), c.Params("material_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Feasibility godoc
// @Summary      Factibilidad de producción
// @Description  Detalle por material (requerido, disponible, faltante) para producir quantity unidades.
// @Tags         bom
// @Produce      json
// @Param        id        path   string  true  "ID del producto"
// @Param        quantity  query  int     true  "Unidades objetivo (> 0)"
// @Success      200  {object}  dto.FeasibilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/products/{id}/feasibility [get]
func (h *BOMHandler) Feasibility(c *fiber.Ctx) error {
	qty := c.QueryInt("quantity", 0)
	if qty <= 0 {
		return writeError(c, domain.NewValidationError("quantity", "debe ser mayor que cero"))
	}
	out, err := h.uc.CheckFeasibility(c.UserContext(), c.Params("id"), int64(qty))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
