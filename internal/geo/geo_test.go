package geo

import (
	"math"
	"sort"
	"strings"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		wantMiles  float64
		tolerance  float64
	}{
		{
			name: "same point",
			lat1: 36.1667, lon1: -86.7844,
			lat2: 36.1667, lon2: -86.7844,
			wantMiles: 0, tolerance: 0.001,
		},
		{
			name: "Nashville to Chattanooga",
			lat1: 36.1667, lon1: -86.7844,
			lat2: 35.1345, lon2: -85.2972,
			wantMiles: 113, tolerance: 3,
		},
		{
			name: "Memphis to Knoxville",
			lat1: 35.1495, lon1: -90.0490,
			lat2: 35.9606, lon2: -83.9207,
			wantMiles: 347, tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantMiles) > tt.tolerance {
				t.Errorf("Distance() = %.2f miles, want %.2f +/- %.1f", got, tt.wantMiles, tt.tolerance)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	d1 := Distance(36.1667, -86.7844, 35.1345, -85.2972)
	d2 := Distance(35.1345, -85.2972, 36.1667, -86.7844)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance not symmetric: %.6f vs %.6f", d1, d2)
	}
}

func TestReadCentroids(t *testing.T) {
	input := strings.Join([]string{
		"county_name,centroid_lat,centroid_lon",
		"Davidson,36.1744,-86.7850",
		"Dickson,36.1489,-87.3564",
		"Bad Row,not-a-number,-87.0",
		" ,35.0,-86.0",
	}, "\n")

	centroids, err := ReadCentroids(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCentroids() error = %v", err)
	}

	if len(centroids) != 2 {
		t.Fatalf("got %d centroids, want 2 (bad rows skipped)", len(centroids))
	}

	p, ok := centroids.Lookup("DICKSON")
	if !ok {
		t.Fatal("Lookup(DICKSON) not found, want case-insensitive hit")
	}
	if p.Lat != 36.1489 || p.Lon != -87.3564 {
		t.Errorf("Lookup(DICKSON) = %+v, want 36.1489,-87.3564", p)
	}

	if _, ok := centroids.Lookup("Nowhere"); ok {
		t.Error("Lookup(Nowhere) found, want miss")
	}
}

func TestReadCentroidsMissingColumn(t *testing.T) {
	input := "county_name,lat,lon\nDavidson,36.17,-86.78\n"
	if _, err := ReadCentroids(strings.NewReader(input)); err == nil {
		t.Fatal("ReadCentroids() with missing columns: want error, got nil")
	}
}

func TestValidate(t *testing.T) {
	centroids := Centroids{
		"davidson": {Lat: 36.17, Lon: -86.78},
		"broken":   {Lat: 136.17, Lon: -286.78},
	}

	problems := centroids.Validate()
	sort.Strings(problems)
	if len(problems) != 2 {
		t.Fatalf("Validate() found %d problems, want 2: %v", len(problems), problems)
	}
	for _, p := range problems {
		if !strings.HasPrefix(p, "broken:") {
			t.Errorf("unexpected problem entry: %s", p)
		}
	}
}
