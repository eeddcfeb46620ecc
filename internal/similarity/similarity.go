// Package similarity provides the pairwise string scores used by the
// fuzzy matching strategies. All scores are on a 0-100 scale and expect
// inputs already passed through normalize.Name.
package similarity

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Whole-string Jaro-Winkler over-rewards shared prefixes on short place
// names, so it is discounted before competing with the token-sort score.
const jaroWinklerDiscount = 0.92

// Ratio returns the normalized Levenshtein similarity of two strings in
// [0, 100]. Two empty strings are considered identical.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	la := len([]rune(a))
	lb := len([]rune(b))
	longer := la
	if lb > longer {
		longer = lb
	}

	dist := levenshtein.ComputeDistance(a, b)
	score := (1 - float64(dist)/float64(longer)) * 100
	if score < 0 {
		return 0
	}
	return score
}

// TokenSortRatio sorts the words of both strings before computing Ratio,
// making the score robust to word reordering ("creek mill" vs "mill creek").
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// JaroWinkler returns the Jaro-Winkler similarity scaled to [0, 100],
// with the standard 0.7 boost threshold and 4-character prefix.
func JaroWinkler(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return smetrics.JaroWinkler(a, b, 0.7, 4) * 100
}

// Score is the pairwise score the engine uses for fuzzy comparisons: the
// better of the token-sort ratio and the discounted whole-string
// Jaro-Winkler score. Token reordering and spelling drift each need their
// own metric; neither alone separates true renames from near-collisions.
func Score(a, b string) float64 {
	ts := TokenSortRatio(a, b)
	jw := JaroWinkler(a, b) * jaroWinklerDiscount
	if jw > ts {
		return jw
	}
	return ts
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}
