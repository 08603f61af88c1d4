package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BankAccount struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID             uuid.UUID       `gorm:"index" json:"org_id"`
	Label             string          `json:"label"`
	IBAN              string          `gorm:"column:iban" json:"iban,omitempty"`
	BIC               string          `gorm:"column:bic" json:"bic,omitempty"`
	LedgerAccountCode string          `json:"ledger_account_code"`
	Currency          string          `json:"currency"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	IsDefault         bool            `json:"is_default"`
	LastBalance       decimal.Decimal `gorm:"type:numeric" json:"last_balance"`
	BalanceSyncedAt   *time.Time      `json:"balance_synced_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
