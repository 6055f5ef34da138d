package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReceiptNotFound is returned by lookups for an unknown receipt ID.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrPersistence wraps failures to durably write the collection, so
	// callers can warn that an acknowledged change may not survive a
	// restart.
	ErrPersistence = errors.New("persisting receipts")

	// ErrStatusTransition is returned when a status update would move a
	// receipt backwards from paid to pending.
	ErrStatusTransition = errors.New("receipt status cannot revert to pending")
)

// Store holds the receipt collection in memory in insertion order and writes
// the whole collection through to the DB on every mutation.
type Store struct {
	db       DB
	receipts []Receipt
}

// NewStore loads the persisted collection into a new Store. A missing
// collection yields an empty store.
func NewStore(db DB) (*Store, error) {
	receipts, err := db.LoadReceipts()
	if err != nil {
		return nil, fmt.Errorf("loading receipts: %w", err)
	}
	return &Store{db: db, receipts: receipts}, nil
}

// cloneReceipt copies a receipt deeply enough that the caller cannot reach
// the store's Expenses backing array. A nil slice stays nil so JSON output
// and equality checks are unaffected.
func cloneReceipt(r Receipt) Receipt {
	if r.Expenses != nil {
		expenses := make([]Expense, len(r.Expenses))
		copy(expenses, r.Expenses)
		r.Expenses = expenses
	}
	return r
}

// Receipts returns a copy of the collection in insertion order.
func (s *Store) Receipts() []Receipt {
	out := make([]Receipt, len(s.receipts))
	for i, r := range s.receipts {
		out[i] = cloneReceipt(r)
	}
	return out
}

// Append adds a receipt to the end of the collection and persists. The
// in-memory append is rolled back if the write fails, so memory never runs
// ahead of disk. Caller guarantees ID uniqueness.
func (s *Store) Append(r Receipt) error {
	s.receipts = append(s.receipts, cloneReceipt(r))
	if err := s.db.SaveReceipts(s.receipts); err != nil {
		s.receipts = s.receipts[:len(s.receipts)-1]
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// FindByID returns the receipt with the given ID, or ErrReceiptNotFound.
func (s *Store) FindByID(id string) (Receipt, error) {
	for _, r := range s.receipts {
		if r.ID == id {
			return cloneReceipt(r), nil
		}
	}
	return Receipt{}, fmt.Errorf("%w: %s", ErrReceiptNotFound, id)
}

// UpdateStatus replaces the status of the matching receipt, leaving every
// other field untouched, and persists. Setting the current status again is a
// no-op; moving paid back to pending is rejected.
func (s *Store) UpdateStatus(id string, status Status) error {
	for i := range s.receipts {
		if s.receipts[i].ID != id {
			continue
		}
		if s.receipts[i].Status == status {
			return nil
		}
		if s.receipts[i].Status == StatusPaid && status == StatusPending {
			return ErrStatusTransition
		}

		previous := s.receipts[i].Status
		s.receipts[i].Status = status
		if err := s.db.SaveReceipts(s.receipts); err != nil {
			s.receipts[i].Status = previous
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrReceiptNotFound, id)
}

// Search filters by case-insensitive substring on the transporter name and,
// when dateQuery is non-empty, by substring on the stored date. An empty
// query matches all. Results keep insertion order.
func (s *Store) Search(query, dateQuery string) []Receipt {
	query = strings.ToLower(query)

	results := make([]Receipt, 0)
	for _, r := range s.receipts {
		if !strings.Contains(strings.ToLower(r.TransporterName), query) {
			continue
		}
		if dateQuery != "" && !strings.Contains(r.Date, dateQuery) {
			continue
		}
		results = append(results, cloneReceipt(r))
	}
	return results
}

// Summarize accumulates the remaining amount of paid receipts into
// TotalReceived and the balance amount of pending receipts into TotalPending.
func (s *Store) Summarize() Summary {
	var summary Summary
	for _, r := range s.receipts {
		if r.Status == StatusPaid {
			summary.TotalReceived += r.RemainingAmount
		} else {
			summary.TotalPending += r.BalanceAmount
		}
	}
	return summary
}

// NextReceiptNumber derives the next code from the last receipt in the
// collection. Safe while the store is append-only: the tail always holds the
// highest-numbered receipt.
func (s *Store) NextReceiptNumber() string {
	if len(s.receipts) == 0 {
		return NextReceiptNumber("")
	}
	return NextReceiptNumber(s.receipts[len(s.receipts)-1].ReceiptNumber)
}
