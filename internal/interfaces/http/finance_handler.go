package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
	"github.com/jhoicas/metamorphocus-api/internal/application/finance"
	"github.com/jhoicas/metamorphocus-api/internal/domain/repository"
)

var financeCSVHeader = []string{"date", "type", "category", "description", "amount", "payment_method"}

// FinanceHandler libro de caja del panel.
type FinanceHandler struct {
	uc *finance.TransactionUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.TransactionUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ingreso o gasto
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFinanceTransactionRequest  true  "type income|expense, amount > 0, date YYYY-MM-DD"
// @Success      201   {object}  dto.FinanceTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manager/finance [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFinanceTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Record(c.UserContext(), finance.RecordInput{
		Date:          date,
		Type:          in.Type,
		Category:      in.Category,
		Description:   in.Description,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Movimientos del libro de caja
// @Description  Más recientes primero. from y to son inclusivos.
// @Tags         finance
// @Produce      json
// @Param        type      query  string  false  "income | expense"
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.FinanceTransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/finance [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	filter, err := financeFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Overview godoc
// @Summary      Resumen financiero
// @Description  Ingresos, gastos, balance neto, sumas por categoría y tendencia mensual.
// @Tags         finance
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.FinanceOverviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/finance/overview [get]
func (h *FinanceHandler) Overview(c *fiber.Ctx) error {
	filter, err := financeFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Overview(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar movimientos en CSV
// @Tags         finance
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/manager/finance/export [get]
func (h *FinanceHandler) Export(c *fiber.Ctx) error {
	filter, err := financeFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	rows := make([][]string, 0, len(list))
	for _, tx := range list {
		rows = append(rows, []string{
			tx.Date.Format(dateLayout), tx.Type, tx.Category, tx.Description,
			tx.Amount.StringFixed(2), tx.PaymentMethod,
		})
	}
	return sendCSV(c, "finance", financeCSVHeader, rows)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         finance
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/finance/{id} [delete]
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func financeFilter(c *fiber.Ctx) (repository.FinanceFilter, error) {
	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		return repository.FinanceFilter{}, err
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		return repository.FinanceFilter{}, err
	}
	return repository.FinanceFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		From:     from,
		To:       to,
	}, nil
}
