package engine

import (
	"sort"
)

// Summary aggregates a completed run for report rendering. All fields
// are native Go types; nothing from the loading layer leaks through.
type Summary struct {
	TotalRecords  int            `json:"total_records"`
	Unmatched     int            `json:"unmatched"`
	SingleMatch   int            `json:"single_match"`
	MultipleMatch int            `json:"multiple_match"`
	ByStrategy    map[string]int `json:"by_strategy"`

	// Confidence statistics over best candidates of matched records.
	MeanConfidence   float64 `json:"mean_confidence"`
	MedianConfidence float64 `json:"median_confidence"`
}

// MatchRate returns the fraction of records with at least one candidate.
func (s Summary) MatchRate() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.SingleMatch+s.MultipleMatch) / float64(s.TotalRecords)
}

// Summarize computes disposition and strategy counts plus confidence
// statistics for a completed run.
func Summarize(results []Result) Summary {
	summary := Summary{
		TotalRecords: len(results),
		ByStrategy:   make(map[string]int),
	}

	var confidences []float64
	for i := range results {
		switch results[i].Disposition {
		case SingleMatch:
			summary.SingleMatch++
		case MultipleMatch:
			summary.MultipleMatch++
		default:
			summary.Unmatched++
		}

		if best := results[i].Best(); best != nil {
			summary.ByStrategy[best.Strategy]++
			confidences = append(confidences, best.Confidence)
		}
	}

	if len(confidences) > 0 {
		var total float64
		for _, c := range confidences {
			total += c
		}
		summary.MeanConfidence = total / float64(len(confidences))

		sort.Float64s(confidences)
		mid := len(confidences) / 2
		if len(confidences)%2 == 0 {
			summary.MedianConfidence = (confidences[mid-1] + confidences[mid]) / 2
		} else {
			summary.MedianConfidence = confidences[mid]
		}
	}

	return summary
}
