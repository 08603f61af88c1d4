package matching

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-reconciliation-backend/internal/models"
)

type fakeSource struct {
	invoices         []models.Invoice
	supplierInvoices []models.SupplierInvoice
	expenses         []models.Expense

	invoiceFrom, invoiceTo time.Time
	expenseFrom            time.Time
	supplierCalled         bool

	err error
}

func (f *fakeSource) FindOpenInvoices(orgID uuid.UUID, from, to time.Time) ([]models.Invoice, error) {
	f.invoiceFrom, f.invoiceTo = from, to
	return f.invoices, f.err
}

func (f *fakeSource) FindOpenSupplierInvoices(orgID uuid.UUID) ([]models.SupplierInvoice, error) {
	f.supplierCalled = true
	return f.supplierInvoices, f.err
}

func (f *fakeSource) FindExpenses(orgID uuid.UUID, from, to time.Time) ([]models.Expense, error) {
	f.expenseFrom = from
	return f.expenses, f.err
}

func creditTransaction(amount string) *models.BankTransaction {
	return &models.BankTransaction{
		ID:            uuid.New(),
		OrgID:         uuid.New(),
		OperationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString(amount),
		Direction:     models.DirectionCredit,
		Label:         "VIREMENT ACME",
	}
}

func TestFindCreditQueriesInvoicesInWindow(t *testing.T) {
	source := &fakeSource{
		invoices: []models.Invoice{{
			ID:          uuid.New(),
			Number:      "FAC-2024-001",
			ClientName:  "ACME",
			ClientIBAN:  "FR7630001007941234567890185",
			TotalAmount: decimal.RequireFromString("300.00"),
			Balance:     decimal.RequireFromString("300.00"),
			IssueDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	finder := NewCandidateFinder(source)
	tx := creditTransaction("300.00")

	candidates, err := finder.Find(tx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	cand := candidates[0]
	assert.Equal(t, models.MatchTypeInvoice, cand.Type)
	assert.Equal(t, "FAC-2024-001", cand.Reference)
	assert.Equal(t, "ACME", cand.PartnerName)
	assert.Equal(t, "FR7630001007941234567890185", cand.PartnerIBAN)
	assert.Zero(t, cand.Score)
	assert.Empty(t, cand.Reasons)

	// Window is operation date -30d / +7d.
	assert.Equal(t, tx.OperationDate.AddDate(0, 0, -30), source.invoiceFrom)
	assert.Equal(t, tx.OperationDate.AddDate(0, 0, 7), source.invoiceTo)
}

func TestFindDebitQueriesPayablesAndExpenses(t *testing.T) {
	source := &fakeSource{
		supplierInvoices: []models.SupplierInvoice{{
			ID:           uuid.New(),
			Number:       "FRN-77",
			SupplierName: "OVH",
			TotalAmount:  decimal.RequireFromString("120.00"),
			Balance:      decimal.RequireFromString("120.00"),
		}},
		expenses: []models.Expense{{
			ID:     uuid.New(),
			Label:  "Abonnement logiciel",
			Amount: decimal.RequireFromString("49.90"),
		}},
	}
	finder := NewCandidateFinder(source)
	tx := creditTransaction("120.00")
	tx.Direction = models.DirectionDebit

	candidates, err := finder.Find(tx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.True(t, source.supplierCalled)
	assert.Equal(t, models.MatchTypeSupplierInvoice, candidates[0].Type)
	assert.Equal(t, models.MatchTypeExpense, candidates[1].Type)
	// Expenses use the open amount = recorded amount.
	assert.True(t, candidates[1].OpenAmount.Equal(decimal.RequireFromString("49.90")))
	assert.Equal(t, tx.OperationDate.AddDate(0, 0, -30), source.expenseFrom)
}

func TestFindStoreErrorAborts(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	finder := NewCandidateFinder(source)

	_, err := finder.Find(creditTransaction("10.00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finding open invoices")
}
