package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lettrage status: balanced when grouped debits and credits net to zero.
const (
	LettragePartial   = "partial"
	LettrageBalanced  = "balanced"
	LettrageCancelled = "cancelled"
)

// AccountLettrage groups ledger entries on a client or supplier control
// account under a clearing code. Independent of bank reconciliation.
type AccountLettrage struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID       uuid.UUID       `gorm:"index" json:"org_id"`
	Code        string          `json:"code"`
	AccountCode string          `gorm:"index" json:"account_code"`
	Status      string          `gorm:"default:partial" json:"status"`
	Balance     decimal.Decimal `gorm:"type:numeric" json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type LettrageLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	LettrageID uuid.UUID       `gorm:"index" json:"lettrage_id"`
	EntryRef   string          `json:"entry_ref"`
	Debit      decimal.Decimal `gorm:"type:numeric" json:"debit"`
	Credit     decimal.Decimal `gorm:"type:numeric" json:"credit"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ComputeStatus nets the lines' debits against credits and updates the
// lettrage balance and status. A cancelled lettrage is left untouched.
func (l *AccountLettrage) ComputeStatus(lines []LettrageLine) {
	if l.Status == LettrageCancelled {
		return
	}
	balance := decimal.Zero
	for _, line := range lines {
		balance = balance.Add(line.Debit).Sub(line.Credit)
	}
	l.Balance = balance
	if balance.IsZero() && len(lines) > 0 {
		l.Status = LettrageBalanced
	} else {
		l.Status = LettragePartial
	}
}
