package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/sales"
)

// StorefrontHandler API pública de la tienda: catálogo con stock y alta de pedidos.
type StorefrontHandler struct {
	products *catalog.ProductUseCase
	orders   *sales.OrderUseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(products *catalog.ProductUseCase, orders *sales.OrderUseCase) *StorefrontHandler {
	return &StorefrontHandler{products: products, orders: orders}
}

// ListProducts godoc
// @Summary      Catálogo de la tienda
// @Description  Solo productos con stock > 0. Imagen y descripción tienen valores por defecto.
// @Tags         storefront
// @Produce      json
// @Success      200  {array}   dto.StorefrontProduct
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *StorefrontHandler) ListProducts(c *fiber.Ctx) error {
	list, err := h.products.Storefront(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "no se pudo cargar el catálogo"})
	}
	return c.JSON(list)
}

// PlaceOrder godoc
// @Summary      Registrar pedido
// @Description  Valida todas las líneas y descuenta stock en una sola transacción. Ninguna línea se
//
//	registra si alguna falla.
//
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "customer_name, customer_email, customer_phone?, items [{id, qty}], notes?"
// @Success      200   {object}  dto.PlaceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *StorefrontHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.PlaceOrder(c.UserContext(), in)
	if err != nil {
		return writeStorefrontError(c, err)
	}
	return c.JSON(out)
}
