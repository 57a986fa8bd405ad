// Package pdf genera los reportes PDF de los registros de campo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Dailishaw + título del reporte │ Usuario + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por cabecera                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL (gastos e inversiones)                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/dailishaw/dailishaw-api/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 102}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 230, Green: 240, Blue: 240}
)

const gridSize = 12

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator implementa export.PDFRenderer usando Maroto v2.
type ReportGenerator struct {
	company string
	now     func() time.Time
}

// NewReportGenerator construye el generador. company aparece en la cabecera.
func NewReportGenerator(company string) *ReportGenerator {
	return &ReportGenerator{company: company, now: time.Now}
}

// RenderTable genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) RenderTable(_ context.Context, t *export.Table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s - %s", t.Kind, t.Subject), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(t.Headers))
	m.AddRows(tableHeaderRow(t.Headers, widths))
	for _, r := range tableRows(t.Rows, widths) {
		m.AddRows(r)
	}
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin registros para el filtro seleccionado.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	if t.Total != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalRow(t.Total.StringFixed(2)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + tipo de reporte (izq), usuario + fecha de emisión (der).
func (g *ReportGenerator) headerRow(t *export.Table) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(string(t.Kind)+" report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(t.Subject, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Generated: "+g.now().Format("02 Jan 2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRows(rows [][]string, widths []int) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cols := make([]core.Col, 0, len(r))
		for i, v := range r {
			if i >= len(widths) {
				break
			}
			cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{
				Size: 8, Top: 1, Left: 1, Right: 1,
			})))
		}
		out = append(out, row.New(7).Add(cols...))
	}
	return out
}

func totalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de la grilla; el resto va a la última.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	w := make([]int, n)
	for i := range w {
		w[i] = gridSize / n
	}
	w[n-1] += gridSize % n
	return w
}
