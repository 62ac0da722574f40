// Package pdf exporta el ranking de tiendas a PDF con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO: 店舗別売上順位          │  部門 / 月                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: 店舗 | 2016 | 2017 | ... (posición + movimiento)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: generación de caché + año de orden                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/changerank-api/internal/application/analytics"
	"github.com/jhoicas/changerank-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorUp      = &props.Color{Red: 0, Green: 128, Blue: 0}
	colorDown    = &props.Color{Red: 200, Green: 0, Blue: 0}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const (
	fontFamily = "jp"
	nameSpan   = 3
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera el ranking de tiendas con Maroto v2.
type MarotoPDFGenerator struct {
	fontFile string
}

// NewMarotoPDFGenerator construye el generador. fontFile es un TTF con glifos japoneses;
// vacío usa helvetica.
func NewMarotoPDFGenerator(fontFile string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fontFile: fontFile}
}

// GenerateShopRankingPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateShopRankingPDF(_ context.Context, resp *dto.ShopRankingResponse) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(nameSpan + max(1, len(resp.Years))).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle("店舗別売上順位", true)

	family := "helvetica"
	if g.fontFile != "" {
		fonts, err := repository.New().
			AddUTF8Font(fontFamily, fontstyle.Normal, g.fontFile).
			AddUTF8Font(fontFamily, fontstyle.Bold, g.fontFile).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente %s: %w", g.fontFile, err)
		}
		b = b.WithCustomFonts(fonts)
		family = fontFamily
	}
	b = b.WithDefaultFont(&props.Font{Family: family, Size: 9})

	m := maroto.New(b.Build())
	m.AddRows(headerRow(resp))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(resp.Years))
	m.AddRows(tableRows(resp)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(resp))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y filtros aplicados (der).
func headerRow(resp *dto.ShopRankingResponse) core.Row {
	grid := nameSpan + max(1, len(resp.Years))
	left := grid / 2
	filters := resp.SelectedDeptName
	if resp.Month > 0 {
		filters += fmt.Sprintf(" / %d月", resp.Month)
	}
	return row.New(14).Add(
		col.New(left).Add(
			text.New("店舗別売上順位", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(grid-left).Add(
			text.New(filters, props.Text{
				Size: 9, Align: align.Right, Color: colorGray, Top: 3,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow(years []int) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{h("店舗", nameSpan, align.Left)}
	for _, y := range years {
		cols = append(cols, h(fmt.Sprintf("%d", y), 1, align.Center))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por grupo de tiendas con posición y movimiento de cada año.
func tableRows(resp *dto.ShopRankingResponse) []core.Row {
	out := make([]core.Row, 0, len(resp.Rows))
	for i, r := range resp.Rows {
		name := r.Name
		if r.ClosedNow {
			name += " (閉店)"
		}
		cols := []core.Col{col.New(nameSpan).Add(text.New(name, props.Text{Size: 8, Top: 1.5, Left: 1}))}
		for _, c := range r.Cells {
			cols = append(cols, col.New(1).Add(
				text.New(analytics.RankText(c.Rank), props.Text{Size: 8, Align: align.Center, Top: 0.5}),
				text.New(analytics.MovementText(c), props.Text{Size: 6, Align: align.Center, Top: 4.5, Color: movementColor(c.DiffClass)}),
			))
		}
		rw := row.New(8).Add(cols...)
		if i%2 == 1 {
			rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, rw)
	}
	return out
}

func footerRow(resp *dto.ShopRankingResponse) core.Row {
	return row.New(6).Add(col.New(nameSpan + max(1, len(resp.Years))).Add(
		text.New(fmt.Sprintf("並び順: %d年", resp.SortYear), props.Text{Size: 7, Color: colorGray, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func movementColor(class string) *props.Color {
	switch class {
	case "rank-up", "store-new":
		return colorUp
	case "rank-down", "store-closed":
		return colorDown
	}
	return colorGray
}
