// Package document turns a receipt into a fixed-layout printable document.
// Layout is built as a plain value first so it stays deterministic and
// testable; PDF bytes are produced from that value.
package document

import (
	"github.com/arif1166/khan-transport-ledger-app/internal/ledger"
	"github.com/arif1166/khan-transport-ledger-app/internal/money"
)

const (
	organizationName = "KHAN TRANSPORT"
	contactFooter    = "Contact No: 6296376280"
	currencyGlyph    = "₹"
)

// Line is one labeled figure on the document.
type Line struct {
	Label string
	Value string
}

// Document is the complete single-page layout for one receipt, in its fixed
// visual order: header, receipt metadata, headline figures, expense table,
// computed totals, contact footer.
type Document struct {
	Organization  string
	ReceiptNumber string
	Date          string
	Transporter   string
	Headline      []Line
	ExpenseHead   [2]string
	ExpenseRows   [][2]string
	Totals        []Line
	Footer        string
}

// Build lays out a receipt. It is pure: same receipt, same document, and the
// input is never mutated.
func Build(r ledger.Receipt) Document {
	rows := make([][2]string, 0, len(r.Expenses))
	for _, e := range r.Expenses {
		rows = append(rows, [2]string{e.Name, amount(e.Amount)})
	}

	return Document{
		Organization:  organizationName,
		ReceiptNumber: r.ReceiptNumber,
		Date:          money.FormatDate(r.Date),
		Transporter:   r.TransporterName,
		Headline: []Line{
			{Label: "Advance Amount", Value: amount(r.AdvanceAmount)},
			{Label: "Total Rent", Value: amount(r.TotalRent)},
		},
		ExpenseHead: [2]string{"Expense", "Amount"},
		ExpenseRows: rows,
		Totals: []Line{
			{Label: "Total Expenses", Value: amount(r.TotalExpenses)},
			{Label: "Remaining Amount", Value: amount(r.RemainingAmount)},
			{Label: "Balance Amount", Value: amount(r.BalanceAmount)},
		},
		Footer: contactFooter,
	}
}

func amount(paise int64) string {
	return currencyGlyph + money.Format(paise)
}
