package repository

import (
	"github.com/google/uuid"

	"bank-reconciliation-backend/internal/models"
)

func (s *Store) GetTransaction(id uuid.UUID) (*models.BankTransaction, error) {
	var tx models.BankTransaction
	if err := s.db.First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Store) UpdateTransactionReconciliation(id uuid.UUID, status string, score float64) error {
	return s.db.Model(&models.BankTransaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reconciliation_status": status,
			"reconciliation_score":  score,
		}).Error
}

// UpdateTransactionExtraction persists the tier-3 extraction output.
func (s *Store) UpdateTransactionExtraction(tx *models.BankTransaction) error {
	return s.db.Model(&models.BankTransaction{}).
		Where("id = ?", tx.ID).
		Updates(map[string]interface{}{
			"extracted_invoice_ref":    tx.ExtractedInvoiceRef,
			"extracted_counterparty":   tx.ExtractedCounterparty,
			"extracted_operation_type": tx.ExtractedOperationType,
			"extraction_confidence":    tx.ExtractionConfidence,
		}).Error
}

func (s *Store) ListTransactionsByOrg(orgID uuid.UUID) ([]models.BankTransaction, error) {
	var txs []models.BankTransaction
	err := s.db.
		Where("org_id = ?", orgID).
		Order("operation_date ASC").
		Find(&txs).Error
	return txs, err
}

func (s *Store) ListStatementTransactions(statementID uuid.UUID) ([]models.BankTransaction, error) {
	var txs []models.BankTransaction
	err := s.db.
		Where("statement_id = ?", statementID).
		Order("operation_date ASC").
		Find(&txs).Error
	return txs, err
}
