package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/usecase"
	"github.com/cotelbo/cotel-admin-api/pkg/paging"
)

// EquipmentHandler consultas de equipos individuales (el alta es solo vía
// importación masiva).
type EquipmentHandler struct {
	uc *usecase.EquipmentUseCase
}

// NewEquipmentHandler construye el handler de equipos.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

// ListByLot godoc
// @Summary      Listar los equipos de un lote
// @Tags         equipos
// @Produce      json
// @Param        id         path   string  true   "ID del lote"
// @Param        page       query  int     false  "página (base 1)"
// @Param        page_size  query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  paging.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id}/equipos [get]
func (h *EquipmentHandler) ListByLot(c *fiber.Ctx) error {
	p := pageFromCtx(c)
	limit, offset := p.LimitOffset()
	list, total, err := h.uc.ListByLot(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paging.NewEnvelope(c.OriginalURL(), p, total, list))
}

// GetByID godoc
// @Summary      Obtener equipo por ID
// @Tags         equipos
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipos/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
