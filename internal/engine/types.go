// Package engine implements the multi-strategy place-name matching
// engine: the ordered strategies, candidate aggregation with confidence
// scoring, and optional geographic disambiguation.
package engine

import (
	"github.com/gnis-match/internal/gazetteer"
)

// Disposition classifies the outcome of matching one record.
type Disposition string

const (
	Unmatched     Disposition = "unmatched"
	SingleMatch   Disposition = "single"
	MultipleMatch Disposition = "multiple"
)

// Strategy name tags, in evaluation order. The order matters only for
// breaking exact score ties during aggregation; the highest score wins
// regardless of which strategy produced it.
const (
	StrategyExact       = "exact"
	StrategyVariation   = "variation"
	StrategyCountyFuzzy = "county_fuzzy"
	StrategyGlobalFuzzy = "global_fuzzy"
	StrategyLeadingWord = "leading_word"
)

// Candidate is one proposed correspondence between a historical record
// and a gazetteer entry. Created by a strategy; only confidence
// adjustment steps (aggregation, geographic re-scoring) mutate it
// afterwards. Confidence is always within [0, 100].
type Candidate struct {
	EntryID       string   `json:"entry_id"`
	EntryName     string   `json:"entry_name"`
	EntryCounty   string   `json:"entry_county"`
	FeatureClass  string   `json:"feature_class"`
	Confidence    float64  `json:"confidence"`
	Strategy      string   `json:"strategy"`
	Rationale     string   `json:"rationale"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`

	// entryPos is the candidate's position in the catalog index, kept
	// for coordinate lookup during geographic resolution.
	entryPos int
}

// Result pairs one historical record with its surviving candidates,
// sorted by descending confidence. Note carries the reason when a
// record could not be matched for structural reasons (empty name,
// too-short name) rather than lack of candidates.
type Result struct {
	Record      gazetteer.PlaceRecord `json:"record"`
	Candidates  []Candidate           `json:"candidates"`
	Disposition Disposition           `json:"disposition"`
	Note        string                `json:"note,omitempty"`
}

// Best returns the top candidate, or nil for an unmatched result.
func (r *Result) Best() *Candidate {
	if len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}
