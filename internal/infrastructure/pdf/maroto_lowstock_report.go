// Package pdf implementa la generación del reporte PDF de stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + código  │  Fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Marca | Producto | Color | Stock | Umbral |          │
//	│         Usos/mes | Días restantes                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos bajo umbral                      │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/Consumibles-api/internal/application/reports"
	"github.com/jhoicas/Consumibles-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 127, Green: 29, Blue: 82}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Ensure MarotoReportGenerator implements reports.LowStockReportGenerator.
var _ reports.LowStockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.LowStockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF y devuelve sus bytes. Los productos llegan
// ya ordenados por urgencia desde el caso de uso.
func (g *MarotoReportGenerator) GenerateLowStockPDF(
	_ context.Context,
	store *entity.Store,
	products []*entity.Product,
	now time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(products) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y fecha de generación (der).
func headerRow(store *entity.Store, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+store.Code, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Marca", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Color", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Umbral", 1, align.Center),
		h("Usos/mes", 1, align.Right),
		h("Días rest.", 2, align.Right),
	)
}

// tableRows: una fila por producto bajo umbral.
func tableRows(products []*entity.Product) []core.Row {
	cell := func(s string, size int, a align.Type, c *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c,
		}))
	}
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		days := "—"
		if p.AverageUsesPerMonth > 0 {
			days = strconv.Itoa(p.EstimatedDaysLeft)
		}
		stockColor := colorGray
		if p.Quantity == 0 {
			stockColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			cell(p.Brand, 2, align.Left, nil),
			cell(p.Name, 3, align.Left, nil),
			cell(colorLabel(p), 2, align.Left, colorGray),
			cell(strconv.Itoa(p.Quantity), 1, align.Center, stockColor),
			cell(strconv.Itoa(p.MinStockAlert), 1, align.Center, colorGray),
			cell(fmt.Sprintf("%.1f", p.AverageUsesPerMonth), 1, align.Right, colorGray),
			cell(days, 2, align.Right, nil),
		))
	}
	return result
}

// footerRow: conteo total.
func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d producto(s) en o bajo su umbral de alerta", total), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}

func colorLabel(p *entity.Product) string {
	switch {
	case p.ColorName != "" && p.ColorCode != "":
		return p.ColorName + " (" + p.ColorCode + ")"
	case p.ColorName != "":
		return p.ColorName
	default:
		return p.ColorCode
	}
}
