package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-reconciliation-backend/internal/apperrors"
	"bank-reconciliation-backend/internal/models"
)

// Date windows for candidate lookup, relative to the operation date.
const (
	lookbackDays    = 30
	lookaheadDays   = 7
	expenseLookback = 30
)

// Candidate is a transient document considered as a possible settlement
// for one transaction. Never persisted; matches are recorded separately
// as ReconciliationMatch rows.
type Candidate struct {
	Type        string
	EntityID    uuid.UUID
	Reference   string
	Amount      decimal.Decimal
	OpenAmount  decimal.Decimal
	Date        time.Time
	PartnerName string
	PartnerIBAN string
	Score       float64
	Reasons     []string
}

// Key identifies a candidate for deduplication.
func (c Candidate) Key() string {
	return c.Type + ":" + c.EntityID.String()
}

// DocumentSource is the slice of the ledger store the candidate finder
// depends on. All lookups are org-scoped and read-only.
type DocumentSource interface {
	FindOpenInvoices(orgID uuid.UUID, from, to time.Time) ([]models.Invoice, error)
	FindOpenSupplierInvoices(orgID uuid.UUID) ([]models.SupplierInvoice, error)
	FindExpenses(orgID uuid.UUID, from, to time.Time) ([]models.Expense, error)
}

type CandidateFinder struct {
	source DocumentSource
}

func NewCandidateFinder(source DocumentSource) *CandidateFinder {
	return &CandidateFinder{source: source}
}

// Find returns the open documents that could settle tx, with score 0 and
// no reasons yet. Credits look at receivable invoices around the operation
// date; debits look at payable invoices and recorded expenses.
func (f *CandidateFinder) Find(tx *models.BankTransaction) ([]Candidate, error) {
	var candidates []Candidate

	switch tx.Direction {
	case models.DirectionCredit:
		from := tx.OperationDate.AddDate(0, 0, -lookbackDays)
		to := tx.OperationDate.AddDate(0, 0, lookaheadDays)
		invoices, err := f.source.FindOpenInvoices(tx.OrgID, from, to)
		if err != nil {
			return nil, apperrors.Store(err, "finding open invoices")
		}
		for _, inv := range invoices {
			candidates = append(candidates, Candidate{
				Type:        models.MatchTypeInvoice,
				EntityID:    inv.ID,
				Reference:   inv.Number,
				Amount:      inv.TotalAmount,
				OpenAmount:  inv.Balance,
				Date:        inv.IssueDate,
				PartnerName: inv.ClientName,
				PartnerIBAN: inv.ClientIBAN,
			})
		}

	case models.DirectionDebit:
		supplierInvoices, err := f.source.FindOpenSupplierInvoices(tx.OrgID)
		if err != nil {
			return nil, apperrors.Store(err, "finding open supplier invoices")
		}
		for _, inv := range supplierInvoices {
			candidates = append(candidates, Candidate{
				Type:        models.MatchTypeSupplierInvoice,
				EntityID:    inv.ID,
				Reference:   inv.Number,
				Amount:      inv.TotalAmount,
				OpenAmount:  inv.Balance,
				Date:        inv.InvoiceDate,
				PartnerName: inv.SupplierName,
				PartnerIBAN: inv.SupplierIBAN,
			})
		}

		from := tx.OperationDate.AddDate(0, 0, -expenseLookback)
		expenses, err := f.source.FindExpenses(tx.OrgID, from, time.Now())
		if err != nil {
			return nil, apperrors.Store(err, "finding expenses")
		}
		for _, exp := range expenses {
			candidates = append(candidates, Candidate{
				Type:        models.MatchTypeExpense,
				EntityID:    exp.ID,
				Reference:   exp.Label,
				Amount:      exp.Amount,
				OpenAmount:  exp.Amount,
				Date:        exp.ExpenseDate,
				PartnerName: exp.SupplierName,
			})
		}
	}

	return candidates, nil
}
