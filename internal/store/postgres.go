// Package store persists match runs to Postgres so results can be
// reviewed and queried outside the CLI session that produced them.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/gnis-match/internal/config"
	"github.com/gnis-match/internal/engine"
)

// Store wraps the database connection for match run persistence.
type Store struct {
	DB *sql.DB
}

// NewStore opens a connection using the PG* environment variables.
func NewStore() (*Store, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "user")
	password := config.GetEnv("PGPASSWORD", "password")
	dbname := config.GetEnv("PGDATABASE", "gnis_match")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Store{DB: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Ping verifies the connection is alive.
func (s *Store) Ping() error {
	return s.DB.Ping()
}

// EnsureSchema creates the run and candidate tables if missing.
func (s *Store) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS match_run (
			run_id       SERIAL PRIMARY KEY,
			started_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			total        INTEGER NOT NULL,
			unmatched    INTEGER NOT NULL,
			single_match INTEGER NOT NULL,
			multi_match  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS match_result (
			result_id   SERIAL PRIMARY KEY,
			run_id      INTEGER NOT NULL REFERENCES match_run(run_id),
			record_id   INTEGER NOT NULL,
			place_name  TEXT NOT NULL,
			county      TEXT,
			po_start    TEXT,
			po_end      TEXT,
			disposition TEXT NOT NULL,
			note        TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS match_candidate (
			candidate_id   SERIAL PRIMARY KEY,
			result_id      INTEGER NOT NULL REFERENCES match_result(result_id),
			rank           INTEGER NOT NULL,
			gaz_id         TEXT NOT NULL,
			gaz_name       TEXT NOT NULL,
			gaz_county     TEXT,
			feature_class  TEXT,
			strategy       TEXT NOT NULL,
			confidence     DOUBLE PRECISION NOT NULL,
			distance_miles DOUBLE PRECISION,
			rationale      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_result_run ON match_result(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_candidate_result ON match_candidate(result_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveRun stores a completed run and all its results and candidates
// inside one transaction. Returns the run id.
func (s *Store) SaveRun(results []engine.Result, summary engine.Summary) (int, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRow(`
		INSERT INTO match_run (total, unmatched, single_match, multi_match)
		VALUES ($1, $2, $3, $4)
		RETURNING run_id
	`, summary.TotalRecords, summary.Unmatched, summary.SingleMatch, summary.MultipleMatch).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	resultStmt, err := tx.Prepare(`
		INSERT INTO match_result (run_id, record_id, place_name, county, po_start, po_end, disposition, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING result_id
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer resultStmt.Close()

	candidateStmt, err := tx.Prepare(`
		INSERT INTO match_candidate (result_id, rank, gaz_id, gaz_name, gaz_county, feature_class, strategy, confidence, distance_miles, rationale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare candidate insert: %w", err)
	}
	defer candidateStmt.Close()

	for i := range results {
		r := &results[i]

		var resultID int
		err = resultStmt.QueryRow(runID, r.Record.ID, r.Record.Name, r.Record.County,
			r.Record.POStart, r.Record.POEnd, string(r.Disposition), r.Note).Scan(&resultID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert result for record %d: %w", r.Record.ID, err)
		}

		for rank, c := range r.Candidates {
			var distance sql.NullFloat64
			if c.DistanceMiles != nil {
				distance = sql.NullFloat64{Float64: *c.DistanceMiles, Valid: true}
			}
			_, err = candidateStmt.Exec(resultID, rank+1, c.EntryID, c.EntryName, c.EntryCounty,
				c.FeatureClass, c.Strategy, c.Confidence, distance, c.Rationale)
			if err != nil {
				return 0, fmt.Errorf("failed to insert candidate %s for record %d: %w", c.EntryID, r.Record.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RunCounts returns disposition counts for a stored run.
func (s *Store) RunCounts(runID int) (map[string]int, error) {
	rows, err := s.DB.Query(`
		SELECT disposition, COUNT(*)
		FROM match_result
		WHERE run_id = $1
		GROUP BY disposition
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", runID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var disposition string
		var n int
		if err := rows.Scan(&disposition, &n); err != nil {
			return nil, fmt.Errorf("failed to scan counts: %w", err)
		}
		counts[disposition] = n
	}
	return counts, rows.Err()
}
