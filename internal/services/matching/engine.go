package matching

import (
	"sort"

	"bank-reconciliation-backend/internal/models"
)

const (
	// AutoMatchThreshold is the confidence bar above which a match is
	// created and accepted without human review.
	AutoMatchThreshold = 0.9

	// MaxSuggestions caps the ranked candidate list returned for review.
	MaxSuggestions = 5
)

// Engine runs the tiered rule evaluation over a candidate set. Level-2
// scoring only runs when no level-1 rule retained anything. Rules are
// evaluated in the priority order the store returns them in.
type Engine struct {
	deterministic RuleEvaluator
	scoring       RuleEvaluator
}

func NewEngine() *Engine {
	return &Engine{
		deterministic: DeterministicEvaluator{},
		scoring:       ScoringEvaluator{},
	}
}

// Evaluate applies the active rules to the candidates and returns the
// deduplicated, score-ranked result.
func (e *Engine) Evaluate(tx *models.BankTransaction, rules []models.ReconciliationRule, candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	var hits []Candidate
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.MatchLevel != models.MatchLevelDeterministic {
			continue
		}
		hits = append(hits, e.deterministic.Evaluate(tx, rule, candidates)...)
	}

	if len(hits) == 0 {
		for i := range rules {
			rule := &rules[i]
			if !rule.IsActive || rule.MatchLevel != models.MatchLevelScoring {
				continue
			}
			hits = append(hits, e.scoring.Evaluate(tx, rule, candidates)...)
		}
	}

	return Rank(Dedupe(hits))
}

// Dedupe collapses candidates sharing (type, entity id), keeping the
// highest score observed. Input order is preserved for first occurrences.
func Dedupe(candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}
	index := make(map[string]int, len(candidates))
	var deduped []Candidate
	for _, cand := range candidates {
		key := cand.Key()
		if i, ok := index[key]; ok {
			if cand.Score > deduped[i].Score {
				deduped[i] = cand
			}
			continue
		}
		index[key] = len(deduped)
		deduped = append(deduped, cand)
	}
	return deduped
}

// Rank sorts candidates by descending score. The sort is stable so ties
// keep their emission order.
func Rank(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// Decision is the outcome of the threshold policy for one transaction.
type Decision struct {
	Candidates []Candidate
	Best       *Candidate
	AutoMatch  bool
}

// Decide applies the auto-match threshold to a ranked candidate list and
// truncates it to the suggestion cap. A strict >= comparison: a score of
// exactly 0.9 auto-matches, anything below does not.
func Decide(ranked []Candidate) Decision {
	if len(ranked) == 0 {
		return Decision{}
	}
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}
	best := ranked[0]
	return Decision{
		Candidates: ranked,
		Best:       &best,
		AutoMatch:  best.Score >= AutoMatchThreshold,
	}
}
