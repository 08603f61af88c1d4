package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseConditionsDefaults(t *testing.T) {
	rule := ReconciliationRule{}
	c, err := rule.ParseConditions()
	require.NoError(t, err)
	assert.Zero(t, c.AmountTolerance)
	assert.Equal(t, DefaultNameSimilarityMin, c.NameSimilarityMin)
}

func TestParseConditions(t *testing.T) {
	rule := ReconciliationRule{
		Conditions: datatypes.JSON(`{
			"amount_tolerance": 0.02,
			"date_window_days": 7,
			"require_iban_match": true,
			"require_name_match": true,
			"name_similarity_min": 0.8
		}`),
	}
	c, err := rule.ParseConditions()
	require.NoError(t, err)
	assert.Equal(t, 0.02, c.AmountTolerance)
	assert.Equal(t, 7, c.DateWindowDays)
	assert.True(t, c.RequireIBANMatch)
	assert.False(t, c.RequireInvoiceRef)
	assert.True(t, c.RequireNameMatch)
	assert.Equal(t, 0.8, c.NameSimilarityMin)
}

func TestParseConditionsInvalidJSON(t *testing.T) {
	rule := ReconciliationRule{Conditions: datatypes.JSON(`{broken`)}
	_, err := rule.ParseConditions()
	assert.Error(t, err)
}

func TestParseWeightsDefaults(t *testing.T) {
	rule := ReconciliationRule{ScoreWeights: datatypes.JSON(`{"exact_amount": 0.5}`)}
	w, err := rule.ParseWeights()
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.ExactAmount)
	assert.Equal(t, 30, w.MaxDateWindowDays)
}
