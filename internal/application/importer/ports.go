package importer

import "io"

// ParsedRow fila cruda del archivo de importación (numerada desde la fila 2,
// la 1 es el encabezado).
type ParsedRow struct {
	Line         int
	Serial       string
	MAC          string
	InternalCode string
}

// FileParser puerto de lectura del archivo de equipos (excelize en producción).
type FileParser interface {
	ParseEquipment(r io.Reader) ([]ParsedRow, error)
}

// TemplateBuilder puerto de generación de la plantilla descargable.
type TemplateBuilder interface {
	BuildEquipmentTemplate() ([]byte, error)
}
