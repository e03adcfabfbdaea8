// Package pdf genera la versión imprimible del reporte de riesgo operacional de EPI.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período            │  QR con el ID        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: salidas / cantidad / valor / clases A-B-C          │
//	│  UMBRALES: P80 y P90 de cantidad, P80 de giro                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Categoría | Cant | Stock | Mín | Giro |   │
//	│         Score | Clase                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LEYENDA: significado de las flags                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorClassA  = &props.Color{Red: 180, Green: 20, Blue: 20}
	colorClassB  = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// maxRiskRows límite de filas de la tabla; el resto queda solo en el JSON.
const maxRiskRows = 60

var _ ports.RiskReportRenderer = (*RiskReportPDF)(nil)

// ── Renderer ──────────────────────────────────────────────────────────────────

// RiskReportPDF implementa ports.RiskReportRenderer usando Maroto v2.
type RiskReportPDF struct {
	author string
}

// NewRiskReportPDF construye el renderer; author aparece en los metadatos del PDF.
func NewRiskReportPDF(author string) *RiskReportPDF {
	return &RiskReportPDF{author: author}
}

// RenderRiskReport genera el PDF y devuelve sus bytes.
func (g *RiskReportPDF) RenderRiskReport(report *dto.AnalyticsReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nulo")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de risco operacional de EPI", true).
		WithAuthor(nonEmpty(g.author, "inventario-epi"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumoRow(report.Resumo))
	m.AddRows(thresholdsRow(report.Thresholds))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(riskRows(report.Risco)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(legendRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.AnalyticsReportDTO) core.Row {
	periodo := fmt.Sprintf("Período: %s a %s (%d dias)",
		report.Period.StartDate, report.Period.EndDate, report.Period.Days)

	right := col.New(3)
	if report.ReportID != "" {
		right = right.Add(code.NewQr(report.ReportID, props.Rect{Percent: 90, Center: true}))
	}

	return row.New(24).Add(
		col.New(9).Add(
			text.New("RISCO OPERACIONAL DE EPI", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New("Gerado em "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		right,
	)
}

func resumoRow(r dto.ResumoDTO) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RESUMO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf(
				"Saídas: %d   |   Quantidade: %s   |   Valor: R$ %s   |   Materiais: %d",
				r.TotalSaidas, formatQty(r.TotalQuantidade), formatMoney(r.ValorTotal), r.MateriaisDistintos,
			), props.Text{Size: 8, Top: 6}),
			text.New(fmt.Sprintf(
				"Curva ABC: A %d / B %d / C %d   |   Risco: A %d / B %d / C %d   |   Abaixo do mínimo: %d   |   Críticos: %d",
				r.ClasseA, r.ClasseB, r.ClasseC, r.RiscoA, r.RiscoB, r.RiscoC, r.AbaixoMinimo, r.ItensCriticos,
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func thresholdsRow(th dto.ThresholdsDTO) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Limiares: P80 quantidade %s   |   P90 quantidade %s   |   P80 giro diário %s",
			formatQty(th.P80Quantidade), formatQty(th.P90Quantidade), th.P80Giro.StringFixed(2),
		), props.Text{Size: 7.5, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 4, align.Left),
		h("Categoria", 2, align.Left),
		h("Qtd.", 1, align.Right),
		h("Estoque", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Giro/dia", 1, align.Right),
		h("Score", 1, align.Center),
		h("Classe", 1, align.Center),
	)
}

// riskRows una fila por material, en el orden del reporte (score descendente).
func riskRows(items []dto.RiskItemDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sem saídas no período.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	if len(items) > maxRiskRows {
		items = items[:maxRiskRows]
	}

	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		classe := col.New(1).Add(text.New(it.ClasseRisco, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: classColor(it.ClasseRisco),
		}))
		rows = append(rows, row.New(6).Add(
			cell(truncate(nonEmpty(it.Nome, it.Key), 48), 4, align.Left),
			cell(truncate(nonEmpty(it.Categoria, "—"), 22), 2, align.Left),
			cell(formatQty(it.Quantidade), 1, align.Right),
			cell(formatQty(it.EstoqueAtual), 1, align.Right),
			cell(formatQty(it.EstoqueMinimo), 1, align.Right),
			cell(it.GiroDiario.StringFixed(2), 1, align.Right),
			cell(fmt.Sprintf("%d", it.Score), 1, align.Center),
			classe,
		))
	}
	return rows
}

func legendRow() core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Classe A: abaixo do mínimo com giro alto. Classe B: abaixo do mínimo. "+
			"Classe C: estoque acima do mínimo (independente do score).", props.Text{
			Size: 7, Top: 1, Color: colorGray,
		}),
		text.New("Score: soma dos pesos das flags ativas (estoque baixo, saída alta, saída extrema, "+
			"giro alto, tipo crítico EPI/EPC, pressão de vida útil acima do estoque).", props.Text{
			Size: 7, Top: 6, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func classColor(classe string) *props.Color {
	switch classe {
	case "A":
		return colorClassA
	case "B":
		return colorClassB
	default:
		return colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas con "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatQty cantidad sin decimales si es entera, con coma decimal si no.
func formatQty(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsInteger() {
		return groupThousands(d.StringFixed(0))
	}
	return formatDecimal(d.Round(2))
}

// formatMoney formato brasileño con 2 decimales: 1234.5 → "1.234,50".
func formatMoney(d decimal.Decimal) string {
	return formatDecimal(d.Round(2))
}

func formatDecimal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	return groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un entero: "-1000000" → "-1.000.000".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
