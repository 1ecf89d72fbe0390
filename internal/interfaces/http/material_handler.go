package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/metamorphocus-api/internal/application/catalog"
	"github.com/jhoicas/metamorphocus-api/internal/application/dto"
)

// MaterialHandler gestión de materias primas (panel).
type MaterialHandler struct {
	uc *catalog.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *catalog.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manager/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener material
// @Tags         materials
// @Produce      json
// @Param        id   path      string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Produce      json
// @Param        low_stock  query  bool  false  "Solo materiales en o bajo su punto de reorden"
// @Success      200  {array}   dto.MaterialResponse
// @Router       /api/manager/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.QueryBool("low_stock", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Export godoc
// @Summary      Exportar materiales en CSV
// @Tags         materials
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/manager/materials/export [get]
func (h *MaterialHandler) Export(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), false)
	if err != nil {
		return writeError(c, err)
	}
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, materialCSVRow(m))
	}
	return sendCSV(c, "materials", materialCSVHeader, rows)
}
