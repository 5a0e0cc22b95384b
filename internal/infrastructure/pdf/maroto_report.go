// Package pdf genera el reporte de inventario por almacén.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: COTEL + título       │  Almacén + Fecha        │
//	│  ─────────────────────────────────────────────────────  │
//	│  TABLA: Lote | Recepción | Equipos | Costo (Bs.)        │
//	│  ─────────────────────────────────────────────────────  │
//	│  TOTALES: Total equipos / Costo total                   │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cotelbo/cotel-admin-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(_ context.Context, r *report.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor("COTEL", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, ln := range r.Lines {
		m.AddRows(lineRow(ln))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y almacén + fecha de emisión (der).
func headerRow(r *report.InventoryReport) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COTEL", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de inventario por almacén", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(r.Warehouse.Code+" · "+r.Warehouse.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := header
	headerRight.Align = align.Right
	return row.New(7).Add(
		col.New(4).Add(text.New("LOTE", header)),
		col.New(3).Add(text.New("RECEPCIÓN", header)),
		col.New(2).Add(text.New("EQUIPOS", headerRight)),
		col.New(3).Add(text.New("COSTO (Bs.)", headerRight)),
	)
}

func lineRow(ln report.LotLine) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := cell
	cellRight.Align = align.Right
	return row.New(6).Add(
		col.New(4).Add(text.New(ln.LotCode, cell)),
		col.New(3).Add(text.New(ln.ReceivedAt, cell)),
		col.New(2).Add(text.New(strconv.Itoa(ln.Units), cellRight)),
		col.New(3).Add(text.New(ln.Cost.StringFixed(2), cellRight)),
	)
}

func totalsRow(r *report.InventoryReport) core.Row {
	label := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1}
	value := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Color: colorPrimary}
	return row.New(8).Add(
		col.New(7).Add(text.New("TOTALES", label)),
		col.New(2).Add(text.New(strconv.Itoa(r.TotalUnits), value)),
		col.New(3).Add(text.New(r.TotalCost.StringFixed(2)+" Bs.", value)),
	)
}
