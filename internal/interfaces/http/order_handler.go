package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
)

// OrderHandler gestión de pedidos en el panel.
type OrderHandler struct {
	uc       *sales.OrderUseCase
	receipts *sales.ReceiptUseCase
}

// NewOrderHandler construye el handler. receipts puede ser nil (sin PDF).
func NewOrderHandler(uc *sales.OrderUseCase, receipts *sales.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receipts: receipts}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "pending | processing | completed | cancelled"
// @Param        sort    query  string  false  "newest (default) | oldest | highest | lowest"
// @Success      200  {array}   dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOrders(c.UserContext(), c.Query("status"), c.Query("sort"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Cancelar no devuelve el stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen de pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.OrderStatsResponse
// @Router       /api/manager/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante del pedido en PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "comprobantes deshabilitados"})
	}
	id := c.Params("id")
	pdf, err := h.receipts.OrderReceipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="pedido-%s.pdf"`, id))
	return c.Send(pdf)
}
