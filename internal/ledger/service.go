package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidReceipt wraps validation failures on receipt creation. Nothing is
// persisted when it is returned.
var ErrInvalidReceipt = errors.New("invalid receipt")

// IDGenerator generates unique IDs for receipts and expenses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator issues random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// DocumentRenderer turns a receipt into a printable PDF document.
type DocumentRenderer interface {
	Render(r Receipt) ([]byte, error)
}

// ExpenseInput is one expense row as entered. Rows with a blank name are
// dropped at save time; their amounts only exist while editing.
type ExpenseInput struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// ReceiptInput carries the raw field values collected by the UI. Amounts are
// in paise.
type ReceiptInput struct {
	Date            string         `json:"date"`
	TransporterName string         `json:"transporter_name"`
	AdvanceAmount   int64          `json:"advance_amount"`
	Quantity        int            `json:"quantity"`
	UnitPrice       int64          `json:"unit_price"`
	Expenses        []ExpenseInput `json:"expenses"`
}

// Service handles receipt operations on top of the store: validation,
// derived-field computation at creation, status updates, and document
// rendering/export.
type Service struct {
	store       *Store
	renderer    DocumentRenderer
	exports     ExportStorage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(store *Store, renderer DocumentRenderer, exports ExportStorage) *Service {
	return &Service{
		store:       store,
		renderer:    renderer,
		exports:     exports,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(store *Store, renderer DocumentRenderer, exports ExportStorage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		store:       store,
		renderer:    renderer,
		exports:     exports,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// CreateReceipt validates the input, derives the financial fields, assigns
// the next receipt number, and appends the frozen record to the store.
func (s *Service) CreateReceipt(input ReceiptInput) (Receipt, error) {
	if strings.TrimSpace(input.TransporterName) == "" {
		return Receipt{}, fmt.Errorf("%w: transporter name is required", ErrInvalidReceipt)
	}
	if input.Quantity <= 0 || input.UnitPrice <= 0 {
		return Receipt{}, fmt.Errorf("%w: quantity and unit price must be greater than zero", ErrInvalidReceipt)
	}

	date := input.Date
	if date == "" {
		date = s.timeSource.Now().Format("2006-01-02")
	}

	// Blank-named rows are editing scratch space, not data
	expenses := make([]Expense, 0, len(input.Expenses))
	for _, e := range input.Expenses {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		expenses = append(expenses, Expense{
			ID:     s.idGenerator.Generate(),
			Name:   e.Name,
			Amount: e.Amount,
		})
	}

	rent := TotalRent(input.Quantity, input.UnitPrice)
	expenseTotal := ExpenseTotal(expenses)

	receipt := Receipt{
		ID:              s.idGenerator.Generate(),
		Date:            date,
		ReceiptNumber:   s.store.NextReceiptNumber(),
		TransporterName: input.TransporterName,
		AdvanceAmount:   input.AdvanceAmount,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		TotalRent:       rent,
		Expenses:        expenses,
		TotalExpenses:   expenseTotal,
		RemainingAmount: Remaining(input.AdvanceAmount, expenseTotal),
		BalanceAmount:   Balance(rent, input.AdvanceAmount),
		Status:          StatusPending,
	}

	if err := s.store.Append(receipt); err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (Receipt, error) {
	return s.store.FindByID(id)
}

// ListReceipts returns all receipts in insertion order
func (s *Service) ListReceipts() []Receipt {
	return s.store.Receipts()
}

// SearchReceipts filters by transporter name and optional date substring
func (s *Service) SearchReceipts(query, dateQuery string) []Receipt {
	return s.store.Search(query, dateQuery)
}

// Summary returns the dashboard totals
func (s *Service) Summary() Summary {
	return s.store.Summarize()
}

// NextReceiptNumber previews the code the next receipt will be issued
func (s *Service) NextReceiptNumber() string {
	return s.store.NextReceiptNumber()
}

// MarkPaid transitions a receipt from pending to paid
func (s *Service) MarkPaid(id string) error {
	return s.store.UpdateStatus(id, StatusPaid)
}

// ReceiptPDF renders the receipt document and returns it with its artifact
// filename (<receiptNumber>.pdf).
func (s *Service) ReceiptPDF(id string) ([]byte, string, error) {
	receipt, err := s.store.FindByID(id)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.Render(receipt)
	if err != nil {
		return nil, "", fmt.Errorf("rendering receipt document: %w", err)
	}

	return data, receipt.ReceiptNumber + ".pdf", nil
}

// ExportReceiptPDF renders the receipt document and writes it into the export
// directory. Export failures are logged and reported; they never touch store
// state.
func (s *Service) ExportReceiptPDF(id string) (string, error) {
	data, filename, err := s.ReceiptPDF(id)
	if err != nil {
		return "", err
	}

	saved, err := s.exports.Save(filename, data)
	if err != nil {
		slog.Warn("Failed to export receipt document", "filename", filename, "error", err)
		return "", fmt.Errorf("exporting receipt document: %w", err)
	}
	return saved, nil
}
