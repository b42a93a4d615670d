// Package pdf genera el reporte de salidas en PDF con Maroto v2: una tabla de
// totales por artículo (cantidad y costo a la foto de cada despacho) con los
// filtros aplicados en el encabezado.
package pdf

import (
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportPDFGenerator renderiza el reporte de salidas usando Maroto v2.
type ReportPDFGenerator struct {
	moneyDigits int32
}

// NewReportPDFGenerator construye el generador con los dígitos de presentación.
func NewReportPDFGenerator(moneyDigits int32) *ReportPDFGenerator {
	return &ReportPDFGenerator{moneyDigits: moneyDigits}
}

// GenerateShipmentReport genera el PDF y devuelve sus bytes.
func (g *ReportPDFGenerator) GenerateShipmentReport(
	filter repository.ReportFilter,
	rows []repository.ShipmentAggregate,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de salidas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows, g.moneyDigits) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(rows, g.moneyDigits))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + filtros aplicados + fecha de generación.
func headerRow(filter repository.ReportFilter) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE SALIDAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filterLabel(filter), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func filterLabel(filter repository.ReportFilter) string {
	show := func(v string) string {
		if v == "" {
			return "TODOS"
		}
		return v
	}
	return fmt.Sprintf("Responsable: %s   |   Tienda: %s   |   Código: %s   |   Nombre: %s",
		show(filter.Personnel), show(filter.Store), show(filter.ItemNo), show(filter.ItemName))
}

// tableHeaderRow: cabecera de la tabla de agregados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tienda", 2, align.Left),
		h("Código", 2, align.Left),
		h("Nombre", 3, align.Left),
		h("Cantidad", 1, align.Right),
		h("Costo total", 2, align.Right),
		h("Costo total c/Imp", 2, align.Right),
	)
}

// tableRows: una fila por artículo agregado.
func tableRows(rows []repository.ShipmentAggregate, digits int32) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, a := range rows {
		cell := func(v string, size int, al align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: al, Top: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(a.Store, 2, align.Left),
			cell(a.ItemNo, 2, align.Left),
			cell(a.ItemName, 3, align.Left),
			cell(fmt.Sprintf("%d", a.TotalQuantity), 1, align.Right),
			cell(ledger.RoundMoney(a.TotalCostBeforeTax, digits).StringFixed(digits), 2, align.Right),
			cell(ledger.RoundMoney(a.TotalCostAfterTax, digits).StringFixed(digits), 2, align.Right),
		))
	}
	return result
}

// totalsRow: suma general del reporte.
func totalsRow(rows []repository.ShipmentAggregate, digits int32) core.Row {
	var qty int64
	costBefore := decimal.Zero
	costAfter := decimal.Zero
	for _, a := range rows {
		qty += a.TotalQuantity
		costBefore = costBefore.Add(a.TotalCostBeforeTax)
		costAfter = costAfter.Add(a.TotalCostAfterTax)
	}
	return row.New(9).Add(
		col.New(7).Add(text.New("TOTAL GENERAL", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Left, Top: 2, Color: colorPrimary,
		})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", qty), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
		col.New(2).Add(text.New(ledger.RoundMoney(costBefore, digits).StringFixed(digits), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
		col.New(2).Add(text.New(ledger.RoundMoney(costAfter, digits).StringFixed(digits), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}
