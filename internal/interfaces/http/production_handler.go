package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ProductionHandler corridas de producción e historial.
type ProductionHandler struct {
	uc *inventory.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *inventory.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Produce godoc
// @Summary      Registrar corrida de producción
// @Description  Descuenta los materiales de la receta y suma el stock del producto en una sola transacción.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "product_id, quantity, produced_by, production_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/manager/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate("production_date", in.ProductionDate)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Produce(c.UserContext(), inventory.ProduceInput{
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		ProducedBy:     in.ProducedBy,
		ProductionDate: date,
		Notes:          in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecords godoc
// @Summary      Historial de producción
// @Tags         production
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Máximo de registros (default 100, máx 500)"
// @Success      200  {array}   dto.ProductionRecordResponse
// @Router       /api/manager/production [get]
func (h *ProductionHandler) ListRecords(c *fiber.Ctx) error {
	list, err := h.uc.ListRecords(c.UserContext(), c.Query("product_id"), c.QueryInt("limit", 100))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// parseDate YYYY-MM-DD; vacío devuelve fecha cero (el caso de uso usa hoy).
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	return t, nil
}
