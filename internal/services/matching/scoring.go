package matching

import (
	"fmt"

	"bank-reconciliation-backend/internal/models"
)

// ScoringEvaluator implements level-2 rules: each configured weight
// contributes proportionally to a summed score, and a candidate is kept
// when the sum reaches the rule's suggestion threshold.
type ScoringEvaluator struct{}

func (ScoringEvaluator) Evaluate(tx *models.BankTransaction, rule *models.ReconciliationRule, candidates []Candidate) []Candidate {
	conditions, err := rule.ParseConditions()
	if err != nil {
		return nil
	}
	weights, err := rule.ParseWeights()
	if err != nil {
		return nil
	}

	var matched []Candidate
	for _, cand := range candidates {
		score, reasons := scoreCandidate(tx, conditions, weights, cand)
		if score < rule.SuggestionThreshold {
			continue
		}
		if score > 1.0 {
			score = 1.0
		}
		cand.Score = score
		cand.Reasons = reasons
		matched = append(matched, cand)
	}
	return matched
}

func scoreCandidate(tx *models.BankTransaction, c models.RuleConditions, w models.RuleWeights, cand Candidate) (float64, []string) {
	var score float64
	var reasons []string

	if w.ExactAmount > 0 {
		ratio := amountRatio(tx.Amount, cand.OpenAmount)
		switch {
		case ratio == 0:
			score += w.ExactAmount
			reasons = append(reasons, "Montant exact")
		case ratio > 0 && c.AmountTolerance > 0 && ratio <= c.AmountTolerance:
			score += w.ExactAmount * (1 - ratio/c.AmountTolerance)
			reasons = append(reasons, fmt.Sprintf("Montant proche (écart %.1f%%)", ratio*100))
		}
	}

	if w.DateProximity > 0 {
		days := dayDifference(tx.OperationDate, cand.Date)
		maxDays := float64(w.MaxDateWindowDays)
		if days <= maxDays {
			score += w.DateProximity * (1 - days/maxDays)
			reasons = append(reasons, fmt.Sprintf("Date proche (%.0f jours)", days))
		}
	}

	if w.NameSimilarity > 0 {
		similarity := NameSimilarity(transactionName(tx), cand.PartnerName)
		if similarity > 0.3 {
			score += similarity * w.NameSimilarity
			reasons = append(reasons, fmt.Sprintf("Nom similaire (%.0f%%)", similarity*100))
		}
	}

	if w.IBANMatch > 0 {
		if tx.CounterpartyIBAN != "" && cand.PartnerIBAN != "" && tx.CounterpartyIBAN == cand.PartnerIBAN {
			score += w.IBANMatch
			reasons = append(reasons, "IBAN identique")
		}
	}

	if w.InvoiceRefFound > 0 {
		if referenceInLabel(tx.Label, cand.Reference) {
			score += w.InvoiceRefFound
			reasons = append(reasons, "Référence facture trouvée dans le libellé")
		}
	}

	return score, reasons
}
