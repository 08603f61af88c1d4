package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a recorded outgoing cost that a debit transaction may settle.
type Expense struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID        uuid.UUID       `gorm:"index" json:"org_id"`
	Label        string          `json:"label"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Amount       decimal.Decimal `gorm:"type:numeric" json:"amount"`
	ExpenseDate  time.Time       `json:"expense_date"`
	Status       string          `gorm:"index" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Payment records money applied to a receivable invoice. Inserted when a
// match against an invoice is accepted.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID       uuid.UUID       `gorm:"index" json:"org_id"`
	InvoiceID   uuid.UUID       `gorm:"index" json:"invoice_id"`
	Amount      decimal.Decimal `gorm:"type:numeric" json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
