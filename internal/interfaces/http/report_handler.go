package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/report"
)

// ReportHandler reportes PDF de inventario.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Descargar el reporte de inventario de un almacén (PDF)
// @Tags         reportes
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del almacén"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/inventario/{id} [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	warehouseID := c.Params("id")
	data, err := h.uc.InventoryPDF(c.Context(), warehouseID)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inventario_%s.pdf"`, warehouseID))
	return c.Send(data)
}
