package matching

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bank-reconciliation-backend/internal/models"
)

// RuleEvaluator applies one rule to a candidate set and returns the
// candidates it retains, scored.
type RuleEvaluator interface {
	Evaluate(tx *models.BankTransaction, rule *models.ReconciliationRule, candidates []Candidate) []Candidate
}

// DeterministicEvaluator implements level-1 rules: every configured
// condition must hold, a single failure disqualifies the candidate.
// Survivors always score 1.0.
type DeterministicEvaluator struct{}

func (DeterministicEvaluator) Evaluate(tx *models.BankTransaction, rule *models.ReconciliationRule, candidates []Candidate) []Candidate {
	conditions, err := rule.ParseConditions()
	if err != nil {
		return nil
	}

	var matched []Candidate
	for _, cand := range candidates {
		reasons, ok := checkConditions(tx, conditions, cand)
		if !ok {
			continue
		}
		cand.Score = 1.0
		cand.Reasons = reasons
		matched = append(matched, cand)
	}
	return matched
}

func checkConditions(tx *models.BankTransaction, c models.RuleConditions, cand Candidate) ([]string, bool) {
	var reasons []string

	ratio := amountRatio(tx.Amount, cand.OpenAmount)
	if ratio < 0 || ratio > c.AmountTolerance {
		return nil, false
	}
	if ratio == 0 {
		reasons = append(reasons, "Montant exact")
	} else {
		reasons = append(reasons, fmt.Sprintf("Montant proche (écart %.1f%%)", ratio*100))
	}

	if c.RequireIBANMatch {
		if tx.CounterpartyIBAN == "" || cand.PartnerIBAN == "" || tx.CounterpartyIBAN != cand.PartnerIBAN {
			return nil, false
		}
		reasons = append(reasons, "IBAN identique")
	}

	if c.RequireInvoiceRef {
		if !referenceInLabel(tx.Label, cand.Reference) {
			return nil, false
		}
		reasons = append(reasons, "Référence facture trouvée dans le libellé")
	}

	if c.RequireNameMatch {
		similarity := NameSimilarity(transactionName(tx), cand.PartnerName)
		if similarity < c.NameSimilarityMin {
			return nil, false
		}
		reasons = append(reasons, fmt.Sprintf("Nom similaire (%.0f%%)", similarity*100))
	}

	if c.DateWindowDays > 0 {
		days := dayDifference(tx.OperationDate, cand.Date)
		if days > float64(c.DateWindowDays) {
			return nil, false
		}
		reasons = append(reasons, fmt.Sprintf("Date proche (%.0f jours)", days))
	}

	return reasons, true
}

// amountRatio returns |amount - open| / |amount|, or -1 when the
// transaction amount is zero and the ratio is undefined.
func amountRatio(amount, open decimal.Decimal) float64 {
	absAmount := amount.Abs()
	diff := absAmount.Sub(open.Abs()).Abs()
	if absAmount.IsZero() {
		if diff.IsZero() {
			return 0
		}
		return -1
	}
	return diff.Div(absAmount).InexactFloat64()
}

func referenceInLabel(label, reference string) bool {
	if reference == "" {
		return false
	}
	return strings.Contains(strings.ToLower(label), strings.ToLower(reference))
}

// transactionName is the best counterparty text available on a transaction.
func transactionName(tx *models.BankTransaction) string {
	if tx.CounterpartyName != "" {
		return tx.CounterpartyName
	}
	return tx.Label
}

func dayDifference(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Hours() / 24)
}
