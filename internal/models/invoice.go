package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice payment status.
const (
	InvoiceUnpaid  = "unpaid"
	InvoicePartial = "partial"
	InvoicePaid    = "paid"
	InvoiceSent    = "sent"
	InvoiceOverdue = "overdue"
)

// OpenInvoiceStatuses are the statuses under which an invoice can still
// settle a bank transaction.
var OpenInvoiceStatuses = []string{InvoiceUnpaid, InvoicePartial, InvoiceSent, InvoiceOverdue}

// Invoice is a receivable: money the organization is owed by a client.
type Invoice struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID       uuid.UUID       `gorm:"index" json:"org_id"`
	Number      string          `gorm:"uniqueIndex" json:"number"`
	ClientName  string          `gorm:"index" json:"client_name"`
	ClientIBAN  string          `gorm:"column:client_iban" json:"client_iban,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:numeric" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:numeric" json:"paid_amount"`
	Balance     decimal.Decimal `gorm:"type:numeric" json:"balance"`
	Status      string          `gorm:"index" json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SupplierInvoice is a payable: money the organization owes a supplier.
type SupplierInvoice struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID        uuid.UUID       `gorm:"index" json:"org_id"`
	Number       string          `json:"number"`
	SupplierName string          `gorm:"index" json:"supplier_name"`
	SupplierIBAN string          `gorm:"column:supplier_iban" json:"supplier_iban,omitempty"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric" json:"total_amount"`
	PaidAmount   decimal.Decimal `gorm:"type:numeric" json:"paid_amount"`
	Balance      decimal.Decimal `gorm:"type:numeric" json:"balance"`
	Status       string          `gorm:"index" json:"status"`
	InvoiceDate  time.Time       `json:"invoice_date"`
	DueDate      time.Time       `json:"due_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
