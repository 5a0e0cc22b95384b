package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cotelbo/cotel-admin-api/internal/infrastructure/excel"
)

func TestBuildEquipmentTemplate(t *testing.T) {
	data, err := excel.NewTemplateBuilder().BuildEquipmentTemplate()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "EQUIPOS")
	assert.Contains(t, sheets, "INSTRUCCIONES")

	rows, err := f.GetRows("EQUIPOS")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"SERIE", "MAC", "CODIGO INTERNO"}, rows[0])
}

func TestParseEquipmentTemplateRoundtrip(t *testing.T) {
	data, err := excel.NewTemplateBuilder().BuildEquipmentTemplate()
	require.NoError(t, err)

	rows, err := excel.NewParser().ParseEquipment(bytes.NewReader(data))
	require.NoError(t, err)

	// La plantilla trae dos filas de ejemplo.
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "ZTEGC8F12345", rows[0].Serial)
	assert.Equal(t, "00:1A:2B:3C:4D:5E", rows[0].MAC)
	assert.Equal(t, "EQ-000123", rows[0].InternalCode)
}

func TestParseEquipmentSkipsEmptyRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "SERIE"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "MAC"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "CODIGO INTERNO"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "SER-001"))
	// Fila 3 vacía, fila 4 con datos.
	require.NoError(t, f.SetCellValue("Sheet1", "A4", "  SER-002  "))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, err := excel.NewParser().ParseEquipment(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "SER-001", rows[0].Serial)
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "SER-002", rows[1].Serial, "las celdas se recortan")
}

func TestParseEquipmentRejectsGarbage(t *testing.T) {
	_, err := excel.NewParser().ParseEquipment(bytes.NewReader([]byte("no es un xlsx")))
	assert.Error(t, err)
}
