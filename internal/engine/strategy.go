package engine

import (
	"fmt"
	"strings"

	"github.com/gnis-match/internal/config"
	"github.com/gnis-match/internal/gazetteer"
	"github.com/gnis-match/internal/normalize"
	"github.com/gnis-match/internal/similarity"
)

// query carries the precomputed canonical forms of one record so the
// strategies never re-normalize.
type query struct {
	name      string
	county    string
	tokens    []string
	firstWord string
}

func buildQuery(rec gazetteer.PlaceRecord) query {
	name := normalize.Name(rec.Name)
	return query{
		name:      name,
		county:    normalize.Name(rec.County),
		tokens:    normalize.Tokens(name),
		firstWord: normalize.FirstWord(name),
	}
}

// Strategy is one matching tactic. Implementations read the shared
// index, never mutate it, and return freshly allocated candidates.
type Strategy interface {
	Name() string
	Evaluate(q query, idx *gazetteer.Index, cfg *config.Config) []Candidate
}

// strategies returns the fixed evaluation order.
func strategies() []Strategy {
	return []Strategy{
		exactStrategy{},
		variationStrategy{},
		countyFuzzyStrategy{},
		globalFuzzyStrategy{},
		leadingWordStrategy{},
	}
}

func newCandidate(idx *gazetteer.Index, pos int, confidence float64, strategy, rationale string) Candidate {
	entry := idx.Entries[pos]
	return Candidate{
		EntryID:      entry.ID,
		EntryName:    entry.Name,
		EntryCounty:  entry.County,
		FeatureClass: entry.FeatureClass,
		Confidence:   confidence,
		Strategy:     strategy,
		Rationale:    rationale,
		entryPos:     pos,
	}
}

// exactStrategy matches the full canonical name. County agreement
// decides between certainty, unverifiable, and needs-verification
// scores.
type exactStrategy struct{}

func (exactStrategy) Name() string { return StrategyExact }

func (exactStrategy) Evaluate(q query, idx *gazetteer.Index, cfg *config.Config) []Candidate {
	var out []Candidate
	for _, pos := range idx.ByName[q.name] {
		switch {
		case q.county == "":
			out = append(out, newCandidate(idx, pos, cfg.ExactNoCountyScore, StrategyExact,
				"exact name match, no county to verify"))
		case idx.Counties[pos] == q.county:
			out = append(out, newCandidate(idx, pos, 100, StrategyExact,
				"exact name and county match"))
		default:
			out = append(out, newCandidate(idx, pos, cfg.ExactCountyMismatchScore, StrategyExact,
				fmt.Sprintf("exact name match but county differs (%s vs %s), needs verification",
					q.county, idx.Counties[pos])))
		}
	}
	return out
}

// descriptorSuffixes are the geographic descriptor words commonly added
// to or dropped from historical place names.
var descriptorSuffixes = []string{
	"branch", "creek", "hollow", "ridge", "spring", "hill",
	"station", "mill", "chapel", "store", "landing", "gap",
	"grove", "valley", "point", "springs", "crossroads", "depot",
}

var descriptorSuffixSet = func() map[string]bool {
	set := make(map[string]bool, len(descriptorSuffixes))
	for _, s := range descriptorSuffixes {
		set[s] = true
	}
	return set
}()

// nameVariations generates the declared variants of a canonical name:
// descriptor suffixes appended, a trailing descriptor dropped, and
// possessive forms of the leading word toggled.
func nameVariations(name string, tokens []string) []string {
	seen := map[string]bool{name: true}
	var variations []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	for _, suffix := range descriptorSuffixes {
		add(name + " " + suffix)
	}

	if len(tokens) > 1 && descriptorSuffixSet[tokens[len(tokens)-1]] {
		add(strings.Join(tokens[:len(tokens)-1], " "))
	}

	if len(tokens) > 0 {
		first := tokens[0]
		rest := strings.Join(tokens[1:], " ")
		joined := func(head string) string {
			if rest == "" {
				return head
			}
			return head + " " + rest
		}
		if !strings.HasSuffix(first, "s") {
			add(joined(first + "s"))
		} else if len(first) > 1 {
			add(joined(first[:len(first)-1]))
		}
	}

	return variations
}

// variationStrategy matches declared name variants via the exact-name
// index. County mismatch reduces confidence but does not disqualify.
type variationStrategy struct{}

func (variationStrategy) Name() string { return StrategyVariation }

func (variationStrategy) Evaluate(q query, idx *gazetteer.Index, cfg *config.Config) []Candidate {
	var out []Candidate
	for _, variant := range nameVariations(q.name, q.tokens) {
		for _, pos := range idx.ByName[variant] {
			confidence := cfg.VariationBaseScore
			rationale := fmt.Sprintf("name variation %q", variant)

			if q.county != "" {
				if idx.Counties[pos] == q.county {
					confidence += cfg.VariationCountyBonus
					rationale += ", same county"
				} else {
					confidence -= cfg.VariationCountyPenalty
					rationale += ", different county"
					if confidence < cfg.ConfidenceThreshold {
						confidence = cfg.ConfidenceThreshold
						rationale += fmt.Sprintf(" (held at floor %.0f)", cfg.ConfidenceThreshold)
					}
				}
			}

			out = append(out, newCandidate(idx, pos, confidence, StrategyVariation, rationale))
		}
	}
	return out
}

// countyFuzzyStrategy runs pairwise similarity against entries in the
// record's own county only. County agreement is a precondition, not a
// scoring signal, so the similarity score is used as-is.
type countyFuzzyStrategy struct{}

func (countyFuzzyStrategy) Name() string { return StrategyCountyFuzzy }

func (countyFuzzyStrategy) Evaluate(q query, idx *gazetteer.Index, cfg *config.Config) []Candidate {
	if q.county == "" {
		return nil
	}

	var out []Candidate
	for _, pos := range idx.ByCounty[q.county] {
		score := similarity.Score(q.name, idx.Names[pos])
		if score < cfg.CountyFuzzyThreshold {
			continue
		}
		out = append(out, newCandidate(idx, pos, score, StrategyCountyFuzzy,
			fmt.Sprintf("fuzzy match in same county (score %.1f)", score)))
	}
	return out
}

// globalFuzzyStrategy scans the whole catalog. It carries the highest
// threshold and the harshest county penalty because it is the main path
// for cross-county false positives.
type globalFuzzyStrategy struct{}

func (globalFuzzyStrategy) Name() string { return StrategyGlobalFuzzy }

func (globalFuzzyStrategy) Evaluate(q query, idx *gazetteer.Index, cfg *config.Config) []Candidate {
	if len([]rune(q.name)) < cfg.GlobalFuzzyMinLength {
		return nil
	}

	var out []Candidate
	for pos, entryName := range idx.Names {
		if entryName == "" {
			continue
		}
		score := similarity.Score(q.name, entryName)
		if score < cfg.GlobalFuzzyThreshold {
			continue
		}

		confidence := score
		rationale := fmt.Sprintf("fuzzy match (score %.1f)", score)
		if q.county != "" && idx.Counties[pos] != q.county {
			confidence -= cfg.GlobalFuzzyCountyPenalty
			rationale += fmt.Sprintf(", different county (-%.0f)", cfg.GlobalFuzzyCountyPenalty)
			if confidence < 0 {
				confidence = 0
				rationale += ", clamped to 0"
			}
		} else if q.county != "" {
			rationale += ", same county"
		}

		out = append(out, newCandidate(idx, pos, confidence, StrategyGlobalFuzzy, rationale))
	}
	return out
}

// leadingWordStrategy is the last resort for names recorded without
// their descriptor ("Aaron" for "Aaron Branch"). Only short record
// names and short candidate names qualify, and the score is capped
// below high confidence even when every bonus applies.
type leadingWordStrategy struct{}

func (leadingWordStrategy) Name() string { return StrategyLeadingWord }

func (leadingWordStrategy) Evaluate(q query, idx *gazetteer.Index, cfg *config.Config) []Candidate {
	if len([]rune(q.name)) < cfg.LeadingWordMinLength || len(q.tokens) > 2 {
		return nil
	}

	var out []Candidate
	for _, pos := range idx.ByFirstWord[q.firstWord] {
		entryName := idx.Names[pos]
		if entryName == q.name {
			continue // exact strategy territory
		}
		entryWords := normalize.WordCount(entryName)
		if entryWords > 3 {
			continue
		}

		confidence := cfg.LeadingWordBaseScore
		rationale := fmt.Sprintf("leading word %q", q.firstWord)

		if entryWords == 2 {
			confidence += cfg.LeadingWordTwoWordBonus
			rationale += ", simple descriptor addition"
		}

		if q.county != "" {
			if idx.Counties[pos] == q.county {
				confidence += cfg.LeadingWordCountyBonus
				rationale += ", same county"
			} else {
				confidence -= cfg.LeadingWordCountyPenalty
				rationale += ", different county"
				if confidence < 0 {
					confidence = 0
					rationale += ", clamped to 0"
				}
			}
		}

		if confidence > cfg.LeadingWordMaxScore {
			confidence = cfg.LeadingWordMaxScore
			rationale += fmt.Sprintf(" (capped at %.0f)", cfg.LeadingWordMaxScore)
		}

		out = append(out, newCandidate(idx, pos, confidence, StrategyLeadingWord, rationale))
	}
	return out
}
