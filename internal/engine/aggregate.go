package engine

import (
	"sort"
)

// aggregate pools the per-strategy candidate lists for one record:
// dedupe by target entry (highest score wins; ties go to the earliest
// strategy in the fixed order), drop everything below the confidence
// floor, and sort descending with fully deterministic tie-breaks.
// Running it twice over its own output is a no-op.
func aggregate(pool []Candidate, order map[string]int, floor float64) []Candidate {
	if len(pool) == 0 {
		return nil
	}

	best := make(map[string]Candidate, len(pool))
	for _, c := range pool {
		prev, seen := best[c.EntryID]
		if !seen {
			best[c.EntryID] = c
			continue
		}
		if c.Confidence > prev.Confidence ||
			(c.Confidence == prev.Confidence && order[c.Strategy] < order[prev.Strategy]) {
			best[c.EntryID] = c
		}
	}

	out := make([]Candidate, 0, len(best))
	for _, c := range best {
		if c.Confidence >= floor {
			out = append(out, c)
		}
	}

	sortCandidates(out, order)
	return out
}

// sortCandidates orders by confidence descending, then closest distance
// when known (unknown last), then strategy order, then entry ID. Every
// level is deterministic so repeated runs produce identical output.
func sortCandidates(cands []Candidate, order map[string]int) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		ad, bd := a.DistanceMiles, b.DistanceMiles
		switch {
		case ad != nil && bd != nil && *ad != *bd:
			return *ad < *bd
		case ad != nil && bd == nil:
			return true
		case ad == nil && bd != nil:
			return false
		}
		if order[a.Strategy] != order[b.Strategy] {
			return order[a.Strategy] < order[b.Strategy]
		}
		return a.EntryID < b.EntryID
	})
}

func dispositionFor(n int) Disposition {
	switch {
	case n == 0:
		return Unmatched
	case n == 1:
		return SingleMatch
	default:
		return MultipleMatch
	}
}
