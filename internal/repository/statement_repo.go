package repository

import (
	"github.com/google/uuid"

	"bank-reconciliation-backend/internal/models"
)

func (s *Store) GetStatement(id uuid.UUID) (*models.BankStatement, error) {
	var statement models.BankStatement
	if err := s.db.First(&statement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &statement, nil
}

func (s *Store) UpdateStatement(statement *models.BankStatement) error {
	return s.db.Model(&models.BankStatement{}).
		Where("id = ?", statement.ID).
		Updates(map[string]interface{}{
			"status":            statement.Status,
			"transaction_count": statement.TransactionCount,
			"reconciled_count":  statement.ReconciledCount,
		}).Error
}
