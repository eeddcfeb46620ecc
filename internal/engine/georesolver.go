package engine

import (
	"fmt"

	"github.com/gnis-match/internal/geo"
)

// resolveGeography re-scores a result's candidates by approximate
// distance between the record's county centroid and each candidate's
// location, then re-ranks and optionally collapses an ambiguous result
// to the closest candidate.
//
// The record side always uses its county centroid; the candidate side
// prefers the entry's own coordinates, falling back to its county
// centroid. When either side has no coordinates the candidate keeps its
// score untouched; distance is never assumed to be zero.
func (e *Engine) resolveGeography(result *Result, q query) {
	if len(result.Candidates) == 0 {
		return
	}

	origin, ok := e.centroids.Lookup(q.county)
	if !ok {
		return
	}

	for i := range result.Candidates {
		c := &result.Candidates[i]

		point, ok := e.candidatePoint(c)
		if !ok {
			continue
		}

		miles := geo.Distance(origin.Lat, origin.Lon, point.Lat, point.Lon)
		c.DistanceMiles = &miles

		delta := e.cfg.BandDelta(miles)
		adjusted := c.Confidence + delta
		clampNote := ""
		if adjusted > 100 {
			adjusted = 100
			clampNote = ", clamped to 100"
		}
		if adjusted < 0 {
			adjusted = 0
			clampNote = ", clamped to 0"
		}
		c.Confidence = adjusted
		c.Rationale += fmt.Sprintf("; %.0f mi (%+.0f)%s", miles, delta, clampNote)
	}

	sortCandidates(result.Candidates, e.order)

	if result.Disposition == MultipleMatch && e.cfg.CollapseEnabled {
		e.collapseByProximity(result)
	}
}

// candidatePoint resolves a candidate's coordinate: entry coordinates
// when the catalog has them, otherwise the candidate county's centroid.
func (e *Engine) candidatePoint(c *Candidate) (geo.Point, bool) {
	if c.entryPos >= 0 && c.entryPos < len(e.idx.Entries) {
		entry := e.idx.Entries[c.entryPos]
		if entry.ID == c.EntryID && entry.Lat != nil && entry.Lon != nil {
			return geo.Point{Lat: *entry.Lat, Lon: *entry.Lon}, true
		}
	}
	return e.centroids.Lookup(c.EntryCounty)
}

// collapseByProximity keeps only the closest candidate of an ambiguous
// result when it is at least tied on confidence and leads the next
// closest candidate by more than the configured distance margin.
// Otherwise the record legitimately remains ambiguous.
func (e *Engine) collapseByProximity(result *Result) {
	closest, runnerUp := -1, -1
	for i, c := range result.Candidates {
		if c.DistanceMiles == nil {
			continue
		}
		if closest == -1 || *c.DistanceMiles < *result.Candidates[closest].DistanceMiles {
			runnerUp = closest
			closest = i
		} else if runnerUp == -1 || *c.DistanceMiles < *result.Candidates[runnerUp].DistanceMiles {
			runnerUp = i
		}
	}

	if closest == -1 || runnerUp == -1 {
		return
	}
	if result.Candidates[closest].Confidence < result.Candidates[0].Confidence {
		return
	}
	gap := *result.Candidates[runnerUp].DistanceMiles - *result.Candidates[closest].DistanceMiles
	if gap <= e.cfg.CollapseMarginMiles {
		return
	}

	selected := result.Candidates[closest]
	selected.Rationale += "; selected by geographic proximity"
	result.Candidates = []Candidate{selected}
	result.Disposition = SingleMatch
}
