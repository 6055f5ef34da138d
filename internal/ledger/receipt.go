package ledger

// Status is the settlement state of a receipt. The only permitted transition
// is pending to paid.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Expense is a named cost line item attributed to a receipt. Amount is in
// paise.
type Expense struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Receipt represents one rental transaction. All amounts are in paise. The
// derived fields (TotalRent, TotalExpenses, RemainingAmount, BalanceAmount)
// are computed once at creation and frozen; status is the only field that
// changes afterwards.
type Receipt struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	ReceiptNumber   string    `json:"receipt_number"`
	TransporterName string    `json:"transporter_name"`
	AdvanceAmount   int64     `json:"advance_amount"`
	Quantity        int       `json:"quantity"`
	UnitPrice       int64     `json:"unit_price"`
	TotalRent       int64     `json:"total_rent"`
	Expenses        []Expense `json:"expenses"`
	TotalExpenses   int64     `json:"total_expenses"`
	RemainingAmount int64     `json:"remaining_amount"`
	BalanceAmount   int64     `json:"balance_amount"`
	Status          Status    `json:"status"`
}

// Summary aggregates the dashboard figures: money received so far (remaining
// amounts of paid receipts) and outstanding exposure (balance amounts of
// pending receipts).
type Summary struct {
	TotalReceived int64 `json:"total_received"`
	TotalPending  int64 `json:"total_pending"`
}
