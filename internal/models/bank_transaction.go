package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction direction, from the bank's point of view.
const (
	DirectionCredit = "credit" // money in
	DirectionDebit  = "debit"  // money out
)

// Reconciliation lifecycle of a transaction.
const (
	ReconciliationUnmatched  = "unmatched"
	ReconciliationSuggested  = "suggested"
	ReconciliationMatched    = "matched"
	ReconciliationSuspicious = "suspicious"
	ReconciliationIgnored    = "ignored"
)

type BankTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID         uuid.UUID `gorm:"index" json:"org_id"`
	StatementID   uuid.UUID `gorm:"index" json:"statement_id"`
	BankAccountID uuid.UUID `gorm:"index" json:"bank_account_id"`

	OperationDate time.Time       `json:"operation_date"`
	Amount        decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Currency      string          `json:"currency"`
	Direction     string          `gorm:"index" json:"direction"`
	Label         string          `json:"label"`

	CounterpartyName string `json:"counterparty_name,omitempty"`
	CounterpartyIBAN string `gorm:"column:counterparty_iban" json:"counterparty_iban,omitempty"`
	CounterpartyBIC  string `gorm:"column:counterparty_bic" json:"counterparty_bic,omitempty"`

	// Filled by the tier-3 extraction fallback, advisory only.
	ExtractedInvoiceRef    string  `json:"extracted_invoice_ref,omitempty"`
	ExtractedCounterparty  string  `json:"extracted_counterparty,omitempty"`
	ExtractedOperationType string  `json:"extracted_operation_type,omitempty"`
	ExtractionConfidence   float64 `json:"extraction_confidence,omitempty"`

	ReconciliationStatus string  `gorm:"index;default:unmatched" json:"reconciliation_status"`
	ReconciliationScore  float64 `json:"reconciliation_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
