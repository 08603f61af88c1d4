package reconciliation

import (
	"github.com/google/uuid"

	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/services/matching"
)

// Store is the ledger-store collaborator. All calls are synchronous and
// org-scoped; the engine assumes nothing about the underlying query
// engine. The gorm implementation lives in internal/repository.
type Store interface {
	matching.DocumentSource

	// ActiveRules returns the organization's active reconciliation
	// rules ordered by priority.
	ActiveRules(orgID uuid.UUID) ([]models.ReconciliationRule, error)

	GetTransaction(id uuid.UUID) (*models.BankTransaction, error)
	UpdateTransactionReconciliation(id uuid.UUID, status string, score float64) error
	UpdateTransactionExtraction(tx *models.BankTransaction) error
	ListTransactionsByOrg(orgID uuid.UUID) ([]models.BankTransaction, error)

	CreateMatch(m *models.ReconciliationMatch) error
	GetMatch(id uuid.UUID) (*models.ReconciliationMatch, error)
	UpdateMatch(m *models.ReconciliationMatch) error
	ListMatchesForTransaction(txID uuid.UUID) ([]models.ReconciliationMatch, error)

	GetInvoice(id uuid.UUID) (*models.Invoice, error)
	UpdateInvoicePayment(inv *models.Invoice) error
	CreatePayment(p *models.Payment) error

	GetStatement(id uuid.UUID) (*models.BankStatement, error)
	UpdateStatement(s *models.BankStatement) error
	ListStatementTransactions(statementID uuid.UUID) ([]models.BankTransaction, error)
}
