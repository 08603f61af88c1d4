package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Match record lifecycle. Once accepted a match is immutable apart from
// its status.
const (
	MatchSuggested = "suggested"
	MatchAccepted  = "accepted"
	MatchRejected  = "rejected"
	MatchModified  = "modified"
)

// Document types a match can settle.
const (
	MatchTypeInvoice         = "invoice"
	MatchTypeSupplierInvoice = "supplier_invoice"
	MatchTypeExpense         = "expense"
)

// ReconciliationMatch is the persisted matching decision linking a bank
// transaction to the document it settles.
type ReconciliationMatch struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID         uuid.UUID `gorm:"index" json:"org_id"`
	TransactionID uuid.UUID `gorm:"index" json:"transaction_id"`

	MatchType         string     `json:"match_type"`
	InvoiceID         *uuid.UUID `json:"invoice_id,omitempty"`
	SupplierInvoiceID *uuid.UUID `json:"supplier_invoice_id,omitempty"`
	ExpenseID         *uuid.UUID `json:"expense_id,omitempty"`

	MatchedAmount   decimal.Decimal `gorm:"type:numeric" json:"matched_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric" json:"remaining_amount"`
	ConfidenceScore float64         `json:"confidence_score"`
	IsAutoMatch     bool            `json:"is_auto_match"`
	Reasons         datatypes.JSON  `json:"reasons,omitempty"`

	Status          string     `gorm:"index;default:suggested" json:"status"`
	ValidatedBy     *uuid.UUID `json:"validated_by,omitempty"`
	ValidatedAt     *time.Time `json:"validated_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentID returns the foreign key populated for the match's type.
func (m *ReconciliationMatch) DocumentID() uuid.UUID {
	switch m.MatchType {
	case MatchTypeInvoice:
		if m.InvoiceID != nil {
			return *m.InvoiceID
		}
	case MatchTypeSupplierInvoice:
		if m.SupplierInvoiceID != nil {
			return *m.SupplierInvoiceID
		}
	case MatchTypeExpense:
		if m.ExpenseID != nil {
			return *m.ExpenseID
		}
	}
	return uuid.Nil
}
