package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Match levels: 1 = deterministic all-or-nothing, 2 = weighted scoring,
// 3 = AI extraction fallback.
const (
	MatchLevelDeterministic = 1
	MatchLevelScoring       = 2
	MatchLevelAI            = 3
)

const DefaultNameSimilarityMin = 0.7

// ReconciliationRule is an organization-scoped matching policy. Engine
// behavior is entirely driven by these rows.
type ReconciliationRule struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID               uuid.UUID      `gorm:"index" json:"org_id"`
	Code                string         `json:"code"`
	Name                string         `json:"name"`
	MatchLevel          int            `gorm:"index" json:"match_level"`
	Conditions          datatypes.JSON `json:"conditions"`
	ScoreWeights        datatypes.JSON `json:"score_weights,omitempty"`
	// AutoMatchThreshold is informational only. The engine applies its
	// fixed auto-match bar and ignores per-rule overrides.
	AutoMatchThreshold  float64        `gorm:"default:0.9" json:"auto_match_threshold"`
	SuggestionThreshold float64        `gorm:"default:0.5" json:"suggestion_threshold"`
	Priority            int            `json:"priority"`
	IsActive            bool           `gorm:"index;default:true" json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// RuleConditions is the decoded form of ReconciliationRule.Conditions.
type RuleConditions struct {
	AmountTolerance   float64 `json:"amount_tolerance"`
	DateWindowDays    int     `json:"date_window_days"`
	RequireIBANMatch  bool    `json:"require_iban_match"`
	RequireInvoiceRef bool    `json:"require_invoice_ref"`
	RequireNameMatch  bool    `json:"require_name_match"`
	NameSimilarityMin float64 `json:"name_similarity_min"`
}

// RuleWeights is the decoded form of ReconciliationRule.ScoreWeights,
// used by level-2 rules only. A zero weight disables its component.
type RuleWeights struct {
	ExactAmount       float64 `json:"exact_amount"`
	DateProximity     float64 `json:"date_proximity"`
	NameSimilarity    float64 `json:"name_similarity"`
	IBANMatch         float64 `json:"iban_match"`
	InvoiceRefFound   float64 `json:"invoice_ref_found"`
	MaxDateWindowDays int     `json:"max_date_window_days"`
}

// ParseConditions decodes the rule's condition JSON, applying defaults.
func (r *ReconciliationRule) ParseConditions() (RuleConditions, error) {
	var c RuleConditions
	if len(r.Conditions) > 0 {
		if err := json.Unmarshal(r.Conditions, &c); err != nil {
			return c, err
		}
	}
	if c.NameSimilarityMin == 0 {
		c.NameSimilarityMin = DefaultNameSimilarityMin
	}
	return c, nil
}

// ParseWeights decodes the rule's score-weight JSON, applying defaults.
func (r *ReconciliationRule) ParseWeights() (RuleWeights, error) {
	var w RuleWeights
	if len(r.ScoreWeights) > 0 {
		if err := json.Unmarshal(r.ScoreWeights, &w); err != nil {
			return w, err
		}
	}
	if w.MaxDateWindowDays == 0 {
		w.MaxDateWindowDays = 30
	}
	return w, nil
}
