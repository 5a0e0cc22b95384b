package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cotelbo/cotel-admin-api/internal/application/importer"
)

var _ importer.TemplateBuilder = (*TemplateBuilder)(nil)

const dataSheet = "EQUIPOS"

// TemplateBuilder genera la plantilla descargable de importación de equipos.
type TemplateBuilder struct{}

// NewTemplateBuilder construye el generador de plantillas.
func NewTemplateBuilder() *TemplateBuilder {
	return &TemplateBuilder{}
}

// BuildEquipmentTemplate arma el libro con la hoja de datos (encabezados y
// filas de ejemplo) más una hoja de instrucciones.
func (b *TemplateBuilder) BuildEquipmentTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"SERIE", "MAC", "CODIGO INTERNO"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(dataSheet, col+"1", h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
	})
	if err == nil {
		_ = f.SetCellStyle(dataSheet, "A1", "C1", headerStyle)
	}
	_ = f.SetColWidth(dataSheet, "A", "C", 24)

	examples := [][]string{
		{"ZTEGC8F12345", "00:1A:2B:3C:4D:5E", "EQ-000123"},
		{"HWTC99887766", "A0-B1-C2-D3-E4-F5", "EQ-000124"},
	}
	for i, row := range examples {
		for j, val := range row {
			col, _ := excelize.ColumnNumberToName(j + 1)
			cell := fmt.Sprintf("%s%d", col, i+2)
			if err := f.SetCellValue(dataSheet, cell, val); err != nil {
				return nil, fmt.Errorf("write example row: %w", err)
			}
		}
	}

	if err := b.writeInstructions(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *TemplateBuilder) writeInstructions(f *excelize.File) error {
	const sheet = "INSTRUCCIONES"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create instructions sheet: %w", err)
	}

	lines := []string{
		"Plantilla de importación masiva de equipos",
		"",
		"1. Complete los datos en la hoja EQUIPOS, una fila por equipo.",
		"2. SERIE es obligatoria y no puede repetirse (ni en el archivo ni en el inventario).",
		"3. MAC es opcional; si se registra debe tener el formato AA:BB:CC:DD:EE:FF o AA-BB-CC-DD-EE-FF.",
		"4. CODIGO INTERNO es opcional.",
		"5. Elimine las filas de ejemplo antes de subir el archivo.",
		"6. El código auxiliar (6 a 10 dígitos) se ingresa en el formulario, no en el archivo.",
		"7. El archivo no debe superar los 5 MB.",
	}
	for i, line := range lines {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(sheet, cell, line); err != nil {
			return fmt.Errorf("write instructions: %w", err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 95)
	return nil
}
