package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	receiptNumberPrefix = "KT"
	firstReceiptNumber  = "KT-001"
)

// TotalRent returns quantity times unit price. Callers validate that both
// inputs are positive before creating a receipt.
func TotalRent(quantity int, unitPrice int64) int64 {
	return int64(quantity) * unitPrice
}

// ExpenseTotal sums expense amounts. An empty list totals zero.
func ExpenseTotal(expenses []Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// Remaining is the advance minus total expenses. May be negative; not
// clamped.
func Remaining(advance, expenseTotal int64) int64 {
	return advance - expenseTotal
}

// Balance is the total rent minus the advance. May be negative; not clamped.
func Balance(rent, advance int64) int64 {
	return rent - advance
}

// NextReceiptNumber returns the code following the most recently issued one,
// zero-padded to at least three digits (KT-041 -> KT-042, KT-099 -> KT-100).
// An empty or unparseable last code yields the seed KT-001. The prefix is a
// fixed deployment constant.
func NextReceiptNumber(last string) string {
	if last == "" {
		return firstReceiptNumber
	}

	_, digits, found := strings.Cut(last, "-")
	if !found {
		return firstReceiptNumber
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return firstReceiptNumber
	}

	return fmt.Sprintf("%s-%03d", receiptNumberPrefix, n+1)
}
