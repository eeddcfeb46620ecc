package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gnis-match/internal/normalize"
)

// Centroids maps a canonical county name to its approximate center.
// Lookups use the same normalization as the matching indexes, so
// "DICKSON" and "Dickson " resolve to the same entry.
type Centroids map[string]Point

// Lookup returns the centroid for a county name in any spelling form.
func (c Centroids) Lookup(county string) (Point, bool) {
	p, ok := c[normalize.Name(county)]
	return p, ok
}

// LoadCentroids reads a county centroid reference table. Expected
// columns: county_name, centroid_lat, centroid_lon (header required).
// Rows with unparsable coordinates are skipped, not fatal.
func LoadCentroids(path string) (Centroids, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open centroids file %s: %w", path, err)
	}
	defer file.Close()

	return ReadCentroids(file)
}

// ReadCentroids parses centroid CSV rows from r.
func ReadCentroids(r io.Reader) (Centroids, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read centroids header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"county_name", "centroid_lat", "centroid_lon"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("centroids file missing column %q", required)
		}
	}

	centroids := make(Centroids)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read centroids row: %w", err)
		}

		county := normalize.Name(row[cols["county_name"]])
		if county == "" {
			continue
		}

		lat, latErr := strconv.ParseFloat(row[cols["centroid_lat"]], 64)
		lon, lonErr := strconv.ParseFloat(row[cols["centroid_lon"]], 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		centroids[county] = Point{Lat: lat, Lon: lon}
	}

	return centroids, nil
}

// Validate reports centroids with implausible coordinates. Used by the
// centroids subcommand to sanity-check a reference table before a run.
func (c Centroids) Validate() []string {
	var problems []string
	for county, p := range c {
		if p.Lat < -90 || p.Lat > 90 {
			problems = append(problems, fmt.Sprintf("%s: latitude %.4f out of range", county, p.Lat))
		}
		if p.Lon < -180 || p.Lon > 180 {
			problems = append(problems, fmt.Sprintf("%s: longitude %.4f out of range", county, p.Lon))
		}
	}
	return problems
}
