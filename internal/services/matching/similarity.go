package matching

import (
	"strings"
	"unicode"
)

// NameSimilarity compares two free-text names and returns a score in [0,1].
// Names are normalized (uppercased, punctuation mapped to spaces) and
// compared word by word; a word matches when either side contains the other.
// The ratio is taken over the longer word list.
func NameSimilarity(a, b string) float64 {
	na := normalizeName(a)
	nb := normalizeName(b)

	if na == nb && na != "" {
		return 1.0
	}

	wordsA := significantWords(na)
	wordsB := significantWords(nb)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	matched := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wb, wa) || strings.Contains(wa, wb) {
				matched++
				break
			}
		}
	}

	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	return float64(matched) / float64(denom)
}

// normalizeName uppercases, maps every non-alphanumeric rune to a space
// and collapses runs, so "JEAN-PIERRE" and "JEAN PIERRE" compare equal.
func normalizeName(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// significantWords keeps words longer than two runes; short tokens like
// "SA" or "DE" carry no matching signal.
func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) > 2 {
			words = append(words, w)
		}
	}
	return words
}
