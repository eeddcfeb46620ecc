package similarity

import (
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "cedar grove", "cedar grove", 100},
		{"both empty", "", "", 100},
		{"one empty", "cedar", "", 0},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %.1f, want %.1f", tt.a, tt.b, got, tt.want)
			}
		})
	}

	// Single typo stays high but below exact.
	got := Ratio("centerville", "centreville")
	if got <= 75 || got >= 100 {
		t.Errorf("Ratio(centerville, centreville) = %.1f, want in (75, 100)", got)
	}
}

func TestTokenSortRatio(t *testing.T) {
	// Word order must not matter.
	if got := TokenSortRatio("mill creek", "creek mill"); got != 100 {
		t.Errorf("TokenSortRatio reordered = %.1f, want 100", got)
	}

	// Reordering must not score below the plain ratio.
	plain := Ratio("spring hill", "hill spring")
	sorted := TokenSortRatio("spring hill", "hill spring")
	if sorted < plain {
		t.Errorf("TokenSortRatio %.1f < Ratio %.1f for reordered words", sorted, plain)
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"adams crossroads", "adams crossroads"},
		{"centerville", "centreville"},
		{"aaron", "aaron branch"},
		{"", ""},
		{"x", "completely different name"},
	}

	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Score(%q, %q) = %.1f, out of [0, 100]", p[0], p[1], got)
		}
	}
}

func TestScoreExact(t *testing.T) {
	if got := Score("cedar grove", "cedar grove"); got != 100 {
		t.Errorf("Score of identical strings = %.1f, want 100", got)
	}
}

func TestScoreTranspositionClearsFuzzyThreshold(t *testing.T) {
	// A single internal transposition should remain a strong candidate.
	if got := Score("centerville", "centreville"); got < 85 {
		t.Errorf("Score(centerville, centreville) = %.1f, want >= 85", got)
	}
}
