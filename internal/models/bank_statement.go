package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statement lifecycle. A closed statement is immutable.
const (
	StatementImported   = "imported"
	StatementProcessing = "processing"
	StatementReconciled = "reconciled"
	StatementClosed     = "closed"
)

const (
	StatementSourceManual     = "manual"
	StatementSourceFileImport = "file_import"
	StatementSourceAPISync    = "api_sync"
)

type BankStatement struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID            uuid.UUID       `gorm:"index" json:"org_id"`
	BankAccountID    uuid.UUID       `gorm:"index" json:"bank_account_id"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	OpeningBalance   decimal.Decimal `gorm:"type:numeric" json:"opening_balance"`
	ClosingBalance   decimal.Decimal `gorm:"type:numeric" json:"closing_balance"`
	SourceType       string          `json:"source_type"`
	Status           string          `gorm:"index;default:imported" json:"status"`
	TransactionCount int             `json:"transaction_count"`
	ReconciledCount  int             `json:"reconciled_count"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
