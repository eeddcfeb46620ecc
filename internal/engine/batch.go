package engine

import (
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/gnis-match/internal/gazetteer"
)

// MatchAll processes every record against the catalog and returns one
// result per record, ordered by record ID, together with the run
// summary. Records are fanned out to Workers goroutines; the engine's
// indexes and configuration are read-only during the run, so workers
// need no coordination beyond collecting results.
func (e *Engine) MatchAll(records []gazetteer.PlaceRecord) ([]Result, Summary) {
	workers := e.cfg.Workers
	if workers > len(records) && len(records) > 0 {
		workers = len(records)
	}

	jobs := make(chan gazetteer.PlaceRecord, workers)
	out := make(chan Result, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				out <- e.MatchRecord(rec)
			}
		}()
	}

	go func() {
		for _, rec := range records {
			jobs <- rec
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	var bar *progressbar.ProgressBar
	if e.cfg.ShowProgress {
		bar = progressbar.Default(int64(len(records)), "matching")
	}

	results := make([]Result, 0, len(records))
	for result := range out {
		results = append(results, result)
		if bar != nil {
			bar.Add(1)
		}
	}

	// Workers complete out of order; restore input order.
	sort.Slice(results, func(i, j int) bool {
		return results[i].Record.ID < results[j].Record.ID
	})

	return results, Summarize(results)
}
