package repository

import (
	"github.com/google/uuid"

	"bank-reconciliation-backend/internal/models"
)

func (s *Store) CreateMatch(m *models.ReconciliationMatch) error {
	return s.db.Create(m).Error
}

func (s *Store) GetMatch(id uuid.UUID) (*models.ReconciliationMatch, error) {
	var match models.ReconciliationMatch
	if err := s.db.First(&match, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Store) UpdateMatch(m *models.ReconciliationMatch) error {
	return s.db.Save(m).Error
}

// ListMatchesForTransaction returns a transaction's match records,
// newest first.
func (s *Store) ListMatchesForTransaction(txID uuid.UUID) ([]models.ReconciliationMatch, error) {
	var matches []models.ReconciliationMatch
	err := s.db.
		Where("transaction_id = ?", txID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}
