// Package excel lee y genera los archivos de importación masiva de equipos.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/importer"
)

var _ importer.FileParser = (*Parser)(nil)

// Parser lee el archivo de equipos con excelize.
// Se usa la primera hoja del libro; la fila 1 es el encabezado.
type Parser struct{}

// NewParser construye el lector de archivos de equipos.
func NewParser() *Parser {
	return &Parser{}
}

// ParseEquipment devuelve las filas de datos del archivo, numeradas desde
// la fila 2. Las filas completamente vacías se omiten.
func (p *Parser) ParseEquipment(r io.Reader) ([]importer.ParsedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var parsed []importer.ParsedRow
	for i, row := range rows {
		if i == 0 {
			continue // encabezado
		}
		pr := importer.ParsedRow{
			Line:         i + 1,
			Serial:       cell(row, 0),
			MAC:          cell(row, 1),
			InternalCode: cell(row, 2),
		}
		if pr.Serial == "" && pr.MAC == "" && pr.InternalCode == "" {
			continue
		}
		parsed = append(parsed, pr)
	}
	return parsed, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
