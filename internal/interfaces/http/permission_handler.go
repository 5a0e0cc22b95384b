package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/dto"
	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/pkg/paging"
)

// PermissionHandler CRUD del catálogo de permisos.
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler de permisos.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear permiso
// @Tags         permisos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermissionRequest  true  "recurso, accion, descripcion"
// @Success      201   {object}  dto.PermissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permisos [post]
func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar permisos
// @Tags         permisos
// @Produce      json
// @Param        page       query  int     false  "página (base 1)"
// @Param        page_size  query  int     false  "tamaño de página (máx 100)"
// @Param        search     query  string  false  "búsqueda por recurso o descripción"
// @Param        recurso    query  string  false  "filtro por recurso"
// @Param        accion     query  string  false  "filtro por acción"
// @Param        activo     query  bool    false  "filtro por activo"
// @Success      200  {object}  paging.Envelope
// @Router       /api/permisos [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	p := pageFromCtx(c)
	limit, offset := p.LimitOffset()
	list, total, err := h.uc.List(c.Context(),
		c.Query("search"), c.Query("recurso"), c.Query("accion"),
		boolQuery(c, "activo"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paging.NewEnvelope(c.OriginalURL(), p, total, list))
}

// GetByID godoc
// @Summary      Obtener permiso por ID
// @Tags         permisos
// @Produce      json
// @Param        id   path  string  true  "ID del permiso"
// @Success      200  {object}  dto.PermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permisos/{id} [get]
func (h *PermissionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar descripción o estado de un permiso
// @Tags         permisos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del permiso"
// @Param        body  body  dto.UpdatePermissionRequest  true  "descripcion, activo"
// @Success      200   {object}  dto.PermissionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/permisos/{id} [put]
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePermissionRequest
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
// @Summary      Eliminar permiso (rechazado si está en uso)
// @Tags         permisos
// @Produce      json
// @Param        id  path  string  true  "ID del permiso"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/permisos/{id} [delete]
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
