package repository

import (
	"time"

	"github.com/google/uuid"

	"bank-reconciliation-backend/internal/models"
)

// FindOpenInvoices returns receivable invoices with an open balance,
// issued inside the date window.
func (s *Store) FindOpenInvoices(orgID uuid.UUID, from, to time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.
		Where("org_id = ?", orgID).
		Where("status IN ?", models.OpenInvoiceStatuses).
		Where("balance > 0").
		Where("issue_date BETWEEN ? AND ?", from, to).
		Find(&invoices).Error
	return invoices, err
}

// FindOpenSupplierInvoices returns payables with an open balance. No
// date filter: supplier invoices can be settled long after issue.
func (s *Store) FindOpenSupplierInvoices(orgID uuid.UUID) ([]models.SupplierInvoice, error) {
	var invoices []models.SupplierInvoice
	err := s.db.
		Where("org_id = ?", orgID).
		Where("balance > 0").
		Find(&invoices).Error
	return invoices, err
}

// FindExpenses returns recorded expenses inside the date window.
func (s *Store) FindExpenses(orgID uuid.UUID, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Where("org_id = ?", orgID).
		Where("expense_date BETWEEN ? AND ?", from, to).
		Find(&expenses).Error
	return expenses, err
}

func (s *Store) GetInvoice(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoicePayment writes back the recomputed paid amount, balance
// and status after a match acceptance.
func (s *Store) UpdateInvoicePayment(inv *models.Invoice) error {
	return s.db.Model(&models.Invoice{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"paid_amount": inv.PaidAmount,
			"balance":     inv.Balance,
			"status":      inv.Status,
		}).Error
}

func (s *Store) CreatePayment(p *models.Payment) error {
	return s.db.Create(p).Error
}
