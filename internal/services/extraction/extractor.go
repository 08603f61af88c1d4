// Package extraction implements the tier-3 fallback: best-effort
// structured extraction from a transaction's raw label. It is advisory
// only; every failure collapses to a zero-confidence result.
package extraction

import (
	"context"

	"bank-reconciliation-backend/internal/models"
)

// Known operation-type classifications.
var OperationTypes = []string{
	"virement", "prélèvement", "carte", "chèque", "espèces",
	"frais_bancaires", "salaire", "impot", "autre",
}

// KnownOperationType reports whether t is one of the classifications the
// service is allowed to emit.
func KnownOperationType(t string) bool {
	for _, known := range OperationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Result is what the extraction service infers from a transaction label.
// A zero Confidence means nothing usable was extracted.
type Result struct {
	InvoiceRef    string  `json:"invoice_ref"`
	ClientName    string  `json:"client_name"`
	SupplierName  string  `json:"supplier_name"`
	OperationType string  `json:"operation_type"`
	Confidence    float64 `json:"confidence"`
}

// CounterpartyName returns whichever party name fits the transaction
// direction: client for money in, supplier for money out.
func (r Result) CounterpartyName(direction string) string {
	if direction == models.DirectionCredit {
		return r.ClientName
	}
	return r.SupplierName
}

// Extractor is the free-text extraction collaborator.
type Extractor interface {
	Extract(ctx context.Context, tx *models.BankTransaction) Result
}

// Disabled is the extractor used when no extraction service is
// configured. It always reports zero confidence.
type Disabled struct{}

func (Disabled) Extract(context.Context, *models.BankTransaction) Result {
	return Result{}
}
