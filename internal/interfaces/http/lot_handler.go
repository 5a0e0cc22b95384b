package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/pkg/paging"
)

// LotHandler CRUD de lotes de material.
type LotHandler struct {
	uc *usecase.LotUseCase
}

// NewLotHandler construye el handler de lotes.
func NewLotHandler(uc *usecase.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote en un almacén activo
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "codigo, almacen, descripcion, fecha_recepcion"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lotes [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" || in.WarehouseID == "" {
		return badRequest(c, "codigo y almacen son requeridos")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         lotes
// @Produce      json
// @Param        page                query  int     false  "página (base 1)"
// @Param        page_size           query  int     false  "tamaño de página (máx 100)"
// @Param        search              query  string  false  "búsqueda por código o descripción"
// @Param        almacen             query  string  false  "filtro por almacén"
// @Param        activo              query  bool    false  "filtro por activo"
// @Param        incluir_eliminados  query  bool    false  "incluir lotes eliminados"
// @Success      200  {object}  paging.Envelope
// @Router       /api/lotes [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	p := pageFromCtx(c)
	limit, offset := p.LimitOffset()
	list, total, err := h.uc.List(c.Context(),
		c.Query("search"), c.Query("almacen"), boolQuery(c, "activo"),
		c.QueryBool("incluir_eliminados", false), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paging.NewEnvelope(c.OriginalURL(), p, total, list))
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         lotes
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar lote
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.UpdateLotRequest  true  "codigo, almacen, descripcion, fecha_recepcion, activo"
// @Success      200   {object}  dto.LotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [put]
func (h *LotHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLotRequest
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
// @Summary      Eliminar lote (rechazado si tiene equipos)
// @Tags         lotes
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [delete]
func (h *LotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar lote eliminado
// @Tags         lotes
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id}/restaurar [post]
func (h *LotHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
