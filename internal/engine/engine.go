package engine

import (
	"fmt"
	"strings"

	"github.com/gnis-match/internal/config"
	"github.com/gnis-match/internal/debug"
	"github.com/gnis-match/internal/gazetteer"
	"github.com/gnis-match/internal/geo"
)

// Engine matches historical place records against a gazetteer snapshot.
// Construction builds the indexes and validates the configuration; after
// that the engine is read-only and safe for concurrent use.
type Engine struct {
	idx        *gazetteer.Index
	cfg        *config.Config
	strategies []Strategy
	order      map[string]int
	centroids  geo.Centroids // nil disables geographic resolution
	trace      bool
}

// New builds an engine over a gazetteer snapshot. Centroids may be nil;
// geographic resolution then stays off regardless of configuration. A
// nil cfg uses config.Default(). Configuration errors abort here, before
// any record is processed.
func New(entries []gazetteer.Entry, centroids geo.Centroids, cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	all := strategies()
	active := make([]Strategy, 0, len(all))
	order := make(map[string]int, len(all))
	for i, s := range all {
		order[s.Name()] = i
		if !cfg.StrategyDisabled(s.Name()) {
			active = append(active, s)
		}
	}

	return &Engine{
		idx:        gazetteer.BuildIndex(entries),
		cfg:        cfg,
		strategies: active,
		order:      order,
		centroids:  centroids,
	}, nil
}

// SetTrace enables per-record trace logging.
func (e *Engine) SetTrace(enabled bool) { e.trace = enabled }

// Index exposes the read-only catalog index for collaborators such as
// the search API.
func (e *Engine) Index() *gazetteer.Index { return e.idx }

// Config returns the engine's configuration. Callers must not mutate it
// while matching is in progress.
func (e *Engine) Config() *config.Config { return e.cfg }

// MatchRecord runs every strategy over one record, aggregates the pooled
// candidates, and applies geographic resolution when enabled. Records
// with empty or too-short names degrade to an unmatched result with an
// explanatory note; they never fail the batch.
func (e *Engine) MatchRecord(rec gazetteer.PlaceRecord) Result {
	q := buildQuery(rec)

	if q.name == "" {
		return Result{Record: rec, Disposition: Unmatched, Note: "empty place name"}
	}
	if len([]rune(q.name)) < e.cfg.MinNameLength {
		return Result{Record: rec, Disposition: Unmatched,
			Note: fmt.Sprintf("name %q too short to match reliably", strings.TrimSpace(rec.Name))}
	}

	var pool []Candidate
	for _, s := range e.strategies {
		found := s.Evaluate(q, e.idx, e.cfg)
		debug.Logf(e.trace, "record %d %q: strategy %s produced %d candidates",
			rec.ID, rec.Name, s.Name(), len(found))
		pool = append(pool, found...)
	}

	candidates := aggregate(pool, e.order, e.cfg.ConfidenceThreshold)
	result := Result{
		Record:      rec,
		Candidates:  candidates,
		Disposition: dispositionFor(len(candidates)),
	}

	if e.cfg.GeoEnabled && e.centroids != nil {
		e.resolveGeography(&result, q)
	}

	debug.Logf(e.trace, "record %d %q: %s with %d candidates",
		rec.ID, rec.Name, result.Disposition, len(result.Candidates))
	return result
}
