package gazetteer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// columnMap resolves header names to positions, tolerating extra columns
// and arbitrary column order.
type columnMap map[string]int

func readHeader(reader *csv.Reader, required []string) (columnMap, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(columnMap, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func (c columnMap) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoadPlaces reads the historical place-name registry CSV. Required
// columns: Place_Name, County. Optional: PO_Start, PO_End, Notes.
// Record IDs are assigned from row order so batch output can be restored
// to input order after parallel processing.
func LoadPlaces(path string) ([]PlaceRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open places file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	cols, err := readHeader(reader, []string{"Place_Name", "County"})
	if err != nil {
		return nil, fmt.Errorf("places file %s: %w", path, err)
	}

	var records []PlaceRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		records = append(records, PlaceRecord{
			ID:      len(records),
			Name:    cols.get(row, "Place_Name"),
			County:  cols.get(row, "County"),
			POStart: cols.get(row, "PO_Start"),
			POEnd:   cols.get(row, "PO_End"),
			Notes:   cols.get(row, "Notes"),
		})
	}

	if skipped > 0 {
		fmt.Printf("Loaded %d place records from %s (%d malformed rows skipped)\n", len(records), path, skipped)
	}
	return records, nil
}

// LoadEntries reads the feature catalog CSV. Required columns: gaz_id,
// gaz_name, county_name, gaz_featureclass. Optional coordinate columns:
// prim_lat_dec, prim_long_dec; unparsable coordinates leave the entry
// without a coordinate rather than dropping it.
func LoadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gazetteer file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	cols, err := readHeader(reader, []string{"gaz_id", "gaz_name", "county_name", "gaz_featureclass"})
	if err != nil {
		return nil, fmt.Errorf("gazetteer file %s: %w", path, err)
	}

	var entries []Entry
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		entry := Entry{
			ID:           cols.get(row, "gaz_id"),
			Name:         cols.get(row, "gaz_name"),
			County:       cols.get(row, "county_name"),
			FeatureClass: cols.get(row, "gaz_featureclass"),
		}
		if entry.ID == "" {
			skipped++
			continue
		}

		if lat, err := strconv.ParseFloat(cols.get(row, "prim_lat_dec"), 64); err == nil {
			if lon, err := strconv.ParseFloat(cols.get(row, "prim_long_dec"), 64); err == nil {
				entry.Lat = &lat
				entry.Lon = &lon
			}
		}

		entries = append(entries, entry)
	}

	if skipped > 0 {
		fmt.Printf("Loaded %d gazetteer entries from %s (%d rows skipped)\n", len(entries), path, skipped)
	}
	return entries, nil
}
