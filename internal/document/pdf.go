package document

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/arif1166/khan-transport-ledger-app/internal/ledger"
)

// PDFRenderer renders receipt documents as single-page PDFs using maroto.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render implements ledger.DocumentRenderer.
func (p *PDFRenderer) Render(r ledger.Receipt) ([]byte, error) {
	doc := Build(r)

	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	addMetadata(m, doc)
	addHeadline(m, doc)
	addExpenseTable(m, doc)
	addTotals(m, doc)
	addFooter(m, doc)

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

func addHeader(m core.Maroto, doc Document) {
	m.AddRow(16, col.New(12).Add(
		text.New(doc.Organization, props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	))
	m.AddRow(4, line.NewCol(12))
}

func addMetadata(m core.Maroto, doc Document) {
	m.AddRow(10,
		col.New(6).Add(
			text.New(fmt.Sprintf("Date: %s", doc.Date), props.Text{
				Size:  11,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Receipt No: %s", doc.ReceiptNumber), props.Text{
				Size:  11,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(10, col.New(12).Add(
		text.New(fmt.Sprintf("Transporter: %s", doc.Transporter), props.Text{
			Size:  11,
			Align: align.Left,
		}),
	))
}

func addHeadline(m core.Maroto, doc Document) {
	for _, l := range doc.Headline {
		m.AddRow(9, col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s", l.Label, l.Value), props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		))
	}
}

func addExpenseTable(m core.Maroto, doc Document) {
	m.AddRow(10, col.New(12).Add(
		text.New("Expenses:", props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	))

	m.AddRow(8,
		col.New(8).Add(text.New(doc.ExpenseHead[0], props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Left,
		})),
		col.New(4).Add(text.New(doc.ExpenseHead[1], props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
		})),
	)
	m.AddRow(2, line.NewCol(12))

	for _, row := range doc.ExpenseRows {
		m.AddRow(7,
			col.New(8).Add(text.New(row[0], props.Text{
				Size:  10,
				Align: align.Left,
			})),
			col.New(4).Add(text.New(row[1], props.Text{
				Size:  10,
				Align: align.Right,
			})),
		)
	}
	m.AddRow(2, line.NewCol(12))
}

func addTotals(m core.Maroto, doc Document) {
	for _, l := range doc.Totals {
		m.AddRow(8, col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s", l.Label, l.Value), props.Text{
				Size:  11,
				Align: align.Left,
			}),
		))
	}
}

func addFooter(m core.Maroto, doc Document) {
	m.AddRow(20, col.New(12).Add(
		text.New(doc.Footer, props.Text{
			Size:  9,
			Top:   12,
			Align: align.Center,
		}),
	))
}
