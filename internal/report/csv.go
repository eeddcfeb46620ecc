package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gnis-match/internal/engine"
)

var csvHeader = []string{
	"record_id",
	"place_name",
	"county",
	"po_start",
	"po_end",
	"disposition",
	"candidate_rank",
	"gaz_id",
	"gaz_name",
	"gaz_county",
	"feature_class",
	"strategy",
	"confidence",
	"distance_miles",
	"rationale",
	"note",
}

// WriteCSV writes one row per candidate, with a single row for
// unmatched records so the output covers every input record.
func WriteCSV(w io.Writer, results []engine.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range results {
		r := &results[i]
		base := []string{
			strconv.Itoa(r.Record.ID),
			r.Record.Name,
			r.Record.County,
			r.Record.POStart,
			r.Record.POEnd,
			string(r.Disposition),
		}

		if len(r.Candidates) == 0 {
			row := append(append([]string{}, base...),
				"", "", "", "", "", "", "", "", "", r.Note)
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write record %d: %w", r.Record.ID, err)
			}
			continue
		}

		for rank, c := range r.Candidates {
			distance := ""
			if c.DistanceMiles != nil {
				distance = strconv.FormatFloat(*c.DistanceMiles, 'f', 1, 64)
			}
			row := append(append([]string{}, base...),
				strconv.Itoa(rank+1),
				c.EntryID,
				c.EntryName,
				c.EntryCounty,
				c.FeatureClass,
				c.Strategy,
				strconv.FormatFloat(c.Confidence, 'f', 1, 64),
				distance,
				c.Rationale,
				r.Note,
			)
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write record %d: %w", r.Record.ID, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the full result set to path.
func ExportCSV(path string, results []engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return WriteCSV(f, results)
}
