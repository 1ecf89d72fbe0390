package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
)

// InventoryHandler vistas de tablero: reposición y costos unitarios.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
	costing       *inventory.CostingUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase, costing *inventory.CostingUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment, costing: costing}
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su stock mínimo y materiales en o bajo su punto de reorden,
//
//	con la cantidad sugerida. Los de menor cobertura primero.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ReplenishmentResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/manager/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCosts godoc
// @Summary      Costo unitario y margen de todos los productos
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.ProductCostResponse
// @Router       /api/manager/inventory/costs [get]
func (h *InventoryHandler) ListCosts(c *fiber.Ctx) error {
	out, err := h.costing.ListProductCosts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductCost godoc
// @Summary      Costo unitario y margen de un producto
// @Description  material + mano de obra (promedio histórico) = costo total; margen sobre el precio.
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/products/{id}/cost [get]
func (h *InventoryHandler) ProductCost(c *fiber.Ctx) error {
	out, err := h.costing.ProductCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
