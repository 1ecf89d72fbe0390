package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/inventory"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

// LaborHandler horas de mano de obra y tarifa por hora.
type LaborHandler struct {
	uc *inventory.LaborUseCase
}

// NewLaborHandler construye el handler.
func NewLaborHandler(uc *inventory.LaborUseCase) *LaborHandler {
	return &LaborHandler{uc: uc}
}

// LogHours godoc
// @Summary      Registrar horas
// @Tags         labor
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogLaborRequest  true  "product_id, worker, hours, work_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.LaborEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/labor [post]
func (h *LaborHandler) LogHours(c *fiber.Ctx) error {
	var in dto.LogLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate("work_date", in.WorkDate)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.LogHours(c.UserContext(), inventory.LogInput{
		ProductID: in.ProductID,
		Worker:    in.Worker,
		Hours:     in.Hours,
		WorkDate:  date,
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de horas
// @Description  El costo de cada registro se calcula con la tarifa vigente.
// @Tags         labor
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        worker      query  string  false  "Filtrar por trabajador"
// @Success      200  {object}  dto.LaborListResponse
// @Router       /api/manager/labor [get]
func (h *LaborHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.LaborFilter{
		ProductID: c.Query("product_id"),
		Worker:    c.Query("worker"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetHourlyRate godoc
// @Summary      Tarifa por hora vigente
// @Tags         labor
// @Produce      json
// @Success      200  {object}  dto.HourlyRateResponse
// @Router       /api/manager/settings/hourly-rate [get]
func (h *LaborHandler) GetHourlyRate(c *fiber.Ctx) error {
	rate, err := h.uc.HourlyRate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.HourlyRateResponse{HourlyRate: rate})
}

// SetHourlyRate godoc
// @Summary      Fijar tarifa por hora
// @Tags         labor
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HourlyRateRequest  true  "hourly_rate >= 0"
// @Success      200   {object}  dto.HourlyRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manager/settings/hourly-rate [put]
func (h *LaborHandler) SetHourlyRate(c *fiber.Ctx) error {
	var in dto.HourlyRateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetHourlyRate(c.UserContext(), in.HourlyRate); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.HourlyRateResponse{HourlyRate: in.HourlyRate})
}
