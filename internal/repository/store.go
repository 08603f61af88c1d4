// Package repository is the gorm/Postgres implementation of the ledger
// store the reconciliation service depends on.
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bank-reconciliation-backend/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// ActiveRules returns the organization's active rules, highest priority
// first.
func (s *Store) ActiveRules(orgID uuid.UUID) ([]models.ReconciliationRule, error) {
	var rules []models.ReconciliationRule
	err := s.db.
		Where("org_id = ? AND is_active = ?", orgID, true).
		Order("priority DESC, created_at ASC").
		Find(&rules).Error
	return rules, err
}
