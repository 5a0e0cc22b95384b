package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/importer"
)

// ImportHandler flujo de importación masiva de equipos: plantilla, validación
// en seco, importación definitiva y consulta de trabajos.
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler construye el handler de importación.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Template godoc
// @Summary      Descargar la plantilla de importación (xlsx)
// @Tags         importacion
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/importaciones/plantilla [get]
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	data, err := h.uc.Template()
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plantilla_equipos.xlsx"`)
	return c.Send(data)
}

// Validate godoc
// @Summary      Validar archivo de equipos (dry-run, no persiste inventario)
// @Tags         importacion
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo          formData  file    true  "archivo .xlsx o .xls (máx 5 MB)"
// @Param        lote             formData  string  true  "ID del lote destino"
// @Param        modelo           formData  string  true  "ID del modelo"
// @Param        codigo_auxiliar  formData  string  true  "código auxiliar (6 a 10 dígitos)"
// @Success      200  {object}  dto.ValidateImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/importaciones/validar [post]
func (h *ImportHandler) Validate(c *fiber.Ctx) error {
	in, closeFile, err := h.importInput(c, true)
	if err != nil {
		return fail(c, err)
	}
	defer closeFile()
	out, err := h.uc.Validate(c.Context(), *in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Importar equipos en forma definitiva
// @Description  El archivo se revalida completo; cualquier fila con error
// @Description  aborta la importación sin persistir nada.
// @Tags         importacion
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo          formData  file    true  "archivo .xlsx o .xls (máx 5 MB)"
// @Param        lote             formData  string  true  "ID del lote destino"
// @Param        modelo           formData  string  true  "ID del modelo"
// @Param        codigo_auxiliar  formData  string  true  "código auxiliar (6 a 10 dígitos)"
// @Param        dry_run          formData  bool    false "true equivale a /validar"
// @Success      201  {object}  dto.CommitImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/importaciones [post]
func (h *ImportHandler) Commit(c *fiber.Ctx) error {
	dryRun := c.FormValue("dry_run") == "true" || c.FormValue("dry_run") == "1"
	in, closeFile, err := h.importInput(c, dryRun)
	if err != nil {
		return fail(c, err)
	}
	defer closeFile()
	if in.DryRun {
		out, err := h.uc.Validate(c.Context(), *in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.Commit(c.Context(), *in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetJob godoc
// @Summary      Consultar un trabajo de importación
// @Tags         importacion
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.ImportJobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/importaciones/{id} [get]
func (h *ImportHandler) GetJob(c *fiber.Ctx) error {
	out, err := h.uc.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListJobs godoc
// @Summary      Listar los trabajos de importación del usuario
// @Tags         importacion
// @Produce      json
// @Param        limit  query  int  false  "máximo de trabajos (default 20)"
// @Success      200  {array}  dto.ImportJobResponse
// @Router       /api/importaciones [get]
func (h *ImportHandler) ListJobs(c *fiber.Ctx) error {
	out, err := h.uc.ListJobs(c.Context(), GetUserID(c), c.QueryInt("limit", 20))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// importInput arma el Input desde el formulario multipart. El chequeo de
// extensión, MIME y tamaño corre aquí para rechazar antes de abrir el archivo.
// El caller debe invocar la función de cierre al terminar con el Input.
func (h *ImportHandler) importInput(c *fiber.Ctx, dryRun bool) (*importer.Input, func(), error) {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return nil, nil, importer.FileError("archivo es requerido")
	}
	if err := h.uc.CheckFile(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
		return nil, nil, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, importer.FileError("no se pudo leer el archivo")
	}

	return &importer.Input{
		UserID:      GetUserID(c),
		LotID:       c.FormValue("lote"),
		ModelID:     c.FormValue("modelo"),
		AuxCode:     c.FormValue("codigo_auxiliar"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileSize:    fileHeader.Size,
		File:        file,
		DryRun:      dryRun,
	}, func() { _ = file.Close() }, nil
}
