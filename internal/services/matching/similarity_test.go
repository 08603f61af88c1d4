package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{
			name:     "hyphen becomes a word separator",
			a:        "JEAN-PIERRE",
			b:        "JEAN PIERRE",
			expected: 1.0,
		},
		{
			name:     "exact same string",
			a:        "ACME CONSULTING",
			b:        "ACME CONSULTING",
			expected: 1.0,
		},
		{
			name:     "dotted abbreviation splits into short words",
			a:        "Dupont S.A.R.L.",
			b:        "DUPONT SARL",
			expected: 0.5,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0,
		},
		{
			name:     "only short words on one side",
			a:        "AB CD",
			b:        "ACME CONSULTING",
			expected: 0,
		},
		{
			name:     "partial word overlap",
			a:        "VIREMENT ACME CONSULTING",
			b:        "ACME CONSULTING",
			expected: 2.0 / 3.0,
		},
		{
			name:     "containment counts both directions",
			a:        "MARTIN",
			b:        "MARTINEZ",
			expected: 1.0,
		},
		{
			name:     "no overlap",
			a:        "DUPONT",
			b:        "BERTRAND",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NameSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

// With equal word counts the ratio denominator is the same both ways, so
// the score must be commutative.
func TestNameSimilarityCommutativeForEqualWordCounts(t *testing.T) {
	pairs := [][2]string{
		{"ACME CONSULTING", "ACME SERVICES"},
		{"DUPONT MARTIN", "MARTINEZ DURAND"},
		{"SOCIETE GENERALE", "GENERALE SOCIETE"},
	}
	for _, p := range pairs {
		assert.Equal(t, NameSimilarity(p[0], p[1]), NameSimilarity(p[1], p[0]),
			"similarity(%q,%q) should be commutative", p[0], p[1])
	}
}

func TestNameSimilarityMaxDenominator(t *testing.T) {
	// One matched word out of max(1, 3) qualifying words.
	got := NameSimilarity("ACME", "ACME HOLDING INTERNATIONAL")
	assert.InDelta(t, 1.0/3.0, got, 1e-9)
}
