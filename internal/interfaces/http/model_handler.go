package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/pkg/paging"
)

// ModelHandler CRUD de modelos de equipo.
type ModelHandler struct {
	uc *usecase.ModelUseCase
}

// NewModelHandler construye el handler de modelos.
func NewModelHandler(uc *usecase.ModelUseCase) *ModelHandler {
	return &ModelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear modelo de equipo
// @Tags         modelos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateModelRequest  true  "marca, nombre, descripcion, costo_unitario"
// @Success      201   {object}  dto.ModelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/modelos [post]
func (h *ModelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Brand == "" || in.Name == "" {
		return badRequest(c, "marca y nombre son requeridos")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar modelos de equipo
// @Tags         modelos
// @Produce      json
// @Param        page                query  int     false  "página (base 1)"
// @Param        page_size           query  int     false  "tamaño de página (máx 100)"
// @Param        search              query  string  false  "búsqueda por marca, nombre o descripción"
// @Param        marca               query  string  false  "filtro por marca"
// @Param        activo              query  bool    false  "filtro por activo"
// @Param        incluir_eliminados  query  bool    false  "incluir modelos eliminados"
// @Success      200  {object}  paging.Envelope
// @Router       /api/modelos [get]
func (h *ModelHandler) List(c *fiber.Ctx) error {
	p := pageFromCtx(c)
	limit, offset := p.LimitOffset()
	list, total, err := h.uc.List(c.Context(),
		c.Query("search"), c.Query("marca"), boolQuery(c, "activo"),
		c.QueryBool("incluir_eliminados", false), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paging.NewEnvelope(c.OriginalURL(), p, total, list))
}

// GetByID godoc
// @Summary      Obtener modelo por ID
// @Tags         modelos
// @Produce      json
// @Param        id   path  string  true  "ID del modelo"
// @Success      200  {object}  dto.ModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modelos/{id} [get]
func (h *ModelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar modelo de equipo
// @Tags         modelos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del modelo"
// @Param        body  body  dto.UpdateModelRequest  true  "marca, nombre, descripcion, costo_unitario, activo"
// @Success      200   {object}  dto.ModelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/modelos/{id} [put]
func (h *ModelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar modelo (eliminación lógica)
// @Tags         modelos
// @Produce      json
// @Param        id  path  string  true  "ID del modelo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modelos/{id} [delete]
func (h *ModelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar modelo eliminado
// @Tags         modelos
// @Produce      json
// @Param        id   path  string  true  "ID del modelo"
// @Success      200  {object}  dto.ModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modelos/{id}/restaurar [post]
func (h *ModelHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
