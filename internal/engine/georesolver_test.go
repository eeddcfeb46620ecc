package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/gnis-match/internal/config"
	"github.com/gnis-match/internal/gazetteer"
	"github.com/gnis-match/internal/geo"
)

// geoTestEngine builds an engine around three same-named entries whose
// coordinates sit roughly 70, 136 and 195 miles due north of the origin
// county's centroid (one degree of latitude is about 69.1 miles).
func geoTestEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()

	coord := func(lat, lon float64) (*float64, *float64) { return &lat, &lon }

	lat1, lon1 := coord(37.0130, -86.0)
	lat2, lon2 := coord(37.9682, -86.0)
	lat3, lon3 := coord(38.8220, -86.0)

	entries := []gazetteer.Entry{
		{ID: "near", Name: "Ridgetop", County: "NearCounty", FeatureClass: "Populated Place", Lat: lat1, Lon: lon1},
		{ID: "mid", Name: "Ridgetop", County: "MidCounty", FeatureClass: "Populated Place", Lat: lat2, Lon: lon2},
		{ID: "far", Name: "Ridgetop", County: "FarCounty", FeatureClass: "Populated Place", Lat: lat3, Lon: lon3},
	}

	centroids := geo.Centroids{
		"origin": {Lat: 36.0130, Lon: -86.0},
	}

	eng, err := New(entries, centroids, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return eng
}

func geoTestConfig() *config.Config {
	cfg := config.Default()
	cfg.GeoEnabled = true
	cfg.ConfidenceThreshold = 40 // keep county-mismatch exact candidates alive
	cfg.ShowProgress = false
	cfg.Workers = 1
	// Identical names would also clear the global fuzzy threshold; keep
	// the arithmetic on the exact strategy's mismatch score.
	cfg.DisabledStrategies = []string{"global_fuzzy"}
	return cfg
}

func TestGeoResolutionSelectsClosest(t *testing.T) {
	eng := geoTestEngine(t, geoTestConfig())

	result := eng.MatchRecord(gazetteer.PlaceRecord{ID: 1, Name: "Ridgetop", County: "Origin"})

	// Three equal-score cross-county candidates at ~70/136/195 miles all
	// land in the far band (-20); the closest must win and the ambiguity
	// collapse because the distance gap is far beyond the margin.
	if result.Disposition != SingleMatch {
		t.Fatalf("disposition = %s, want single after proximity collapse", result.Disposition)
	}
	best := result.Best()
	if best.EntryID != "near" {
		t.Errorf("selected %s, want the 70-mile candidate", best.EntryID)
	}
	if best.DistanceMiles == nil {
		t.Fatal("selected candidate has no distance")
	}
	if math.Abs(*best.DistanceMiles-70) > 1.5 {
		t.Errorf("distance = %.1f miles, want about 70", *best.DistanceMiles)
	}
	if !strings.Contains(best.Rationale, "proximity") {
		t.Errorf("rationale %q should record the proximity selection", best.Rationale)
	}
}

func TestGeoResolutionAdjustsConfidence(t *testing.T) {
	cfg := geoTestConfig()
	cfg.CollapseEnabled = false
	eng := geoTestEngine(t, cfg)

	result := eng.MatchRecord(gazetteer.PlaceRecord{ID: 1, Name: "Ridgetop", County: "Origin"})

	if result.Disposition != MultipleMatch {
		t.Fatalf("disposition = %s, want multiple with collapse disabled", result.Disposition)
	}
	// All three sit beyond 50 miles: exact county-mismatch 65 - 20 = 45.
	for _, c := range result.Candidates {
		if c.Confidence != 45 {
			t.Errorf("candidate %s confidence = %.1f, want 45", c.EntryID, c.Confidence)
		}
		if c.Confidence < 0 || c.Confidence > 100 {
			t.Errorf("candidate %s confidence %.1f out of bounds", c.EntryID, c.Confidence)
		}
	}
	// Equal scores re-rank by distance.
	if result.Candidates[0].EntryID != "near" || result.Candidates[2].EntryID != "far" {
		t.Errorf("candidates not ordered by distance: %s, %s, %s",
			result.Candidates[0].EntryID, result.Candidates[1].EntryID, result.Candidates[2].EntryID)
	}
}

func TestGeoResolutionMissingRecordCentroid(t *testing.T) {
	eng := geoTestEngine(t, geoTestConfig())

	result := eng.MatchRecord(gazetteer.PlaceRecord{ID: 1, Name: "Ridgetop", County: "Unknown County"})

	// No centroid for the record's county: adjustment skipped entirely.
	for _, c := range result.Candidates {
		if c.DistanceMiles != nil {
			t.Errorf("candidate %s has a distance despite unknown origin", c.EntryID)
		}
		if c.Confidence != 65 {
			t.Errorf("candidate %s confidence = %.1f, want unadjusted 65", c.EntryID, c.Confidence)
		}
	}
}

func TestGeoResolutionMissingCandidateCoordinates(t *testing.T) {
	cfg := geoTestConfig()
	cfg.CollapseEnabled = false

	entries := []gazetteer.Entry{
		{ID: "located", Name: "Ridgetop", County: "NearCounty", FeatureClass: "Populated Place",
			Lat: func() *float64 { v := 37.0130; return &v }(),
			Lon: func() *float64 { v := -86.0; return &v }()},
		{ID: "unlocated", Name: "Ridgetop", County: "NoCentroidCounty", FeatureClass: "Populated Place"},
	}
	centroids := geo.Centroids{"origin": {Lat: 36.0130, Lon: -86.0}}

	eng, err := New(entries, centroids, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result := eng.MatchRecord(gazetteer.PlaceRecord{ID: 1, Name: "Ridgetop", County: "Origin"})

	for _, c := range result.Candidates {
		switch c.EntryID {
		case "located":
			if c.DistanceMiles == nil {
				t.Error("located candidate missing distance")
			}
			if c.Confidence != 45 {
				t.Errorf("located candidate confidence = %.1f, want 45", c.Confidence)
			}
		case "unlocated":
			// Never treated as distance zero; the score stays put.
			if c.DistanceMiles != nil {
				t.Error("unlocated candidate was assigned a distance")
			}
			if c.Confidence != 65 {
				t.Errorf("unlocated candidate confidence = %.1f, want unchanged 65", c.Confidence)
			}
		}
	}
}

func TestGeoResolutionNoCollapseWithinMargin(t *testing.T) {
	cfg := geoTestConfig()
	cfg.CollapseMarginMiles = 100 // both gaps are smaller than this

	eng := geoTestEngine(t, cfg)
	result := eng.MatchRecord(gazetteer.PlaceRecord{ID: 1, Name: "Ridgetop", County: "Origin"})

	if result.Disposition != MultipleMatch {
		t.Errorf("disposition = %s, want multiple when the gap is within the margin", result.Disposition)
	}
}

func TestGeoResolutionClampsAtHundred(t *testing.T) {
	cfg := geoTestConfig()
	cfg.CollapseEnabled = false

	lat, lon := 36.02, -86.0 // well inside the five-mile band
	entries := []gazetteer.Entry{
		{ID: "here", Name: "Ridgetop", County: "Origin", FeatureClass: "Populated Place", Lat: &lat, Lon: &lon},
	}
	centroids := geo.Centroids{"origin": {Lat: 36.0130, Lon: -86.0}}

	eng, err := New(entries, centroids, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result := eng.MatchRecord(gazetteer.PlaceRecord{ID: 1, Name: "Ridgetop", County: "Origin"})

	best := result.Best()
	if best == nil {
		t.Fatal("no candidate for exact in-county match")
	}
	// Exact match at 100 plus the close-band bonus must clamp, visibly.
	if best.Confidence != 100 {
		t.Errorf("confidence = %.1f, want clamp at 100", best.Confidence)
	}
	if !strings.Contains(best.Rationale, "clamped to 100") {
		t.Errorf("rationale %q should record the clamp", best.Rationale)
	}
}
