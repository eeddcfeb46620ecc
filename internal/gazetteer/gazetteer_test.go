package gazetteer

import (
	"os"
	"path/filepath"
	"testing"
)

func testEntries() []Entry {
	lat := 36.0
	lon := -86.5
	return []Entry{
		{ID: "1001", Name: "Adams Crossroads", County: "Dickson", FeatureClass: "Populated Place", Lat: &lat, Lon: &lon},
		{ID: "1002", Name: "Aaron Branch", County: "Clay", FeatureClass: "Stream"},
		{ID: "1003", Name: "Aaron", County: "Overton", FeatureClass: "Populated Place"},
		{ID: "1004", Name: "Cedar Grove (historical)", County: "Dickson", FeatureClass: "Populated Place"},
		{ID: "1005", Name: "", County: "Dickson", FeatureClass: "Locale"},
	}
}

func TestBuildIndex(t *testing.T) {
	idx := BuildIndex(testEntries())

	if got := idx.ByName["adams crossroads"]; len(got) != 1 || got[0] != 0 {
		t.Errorf("ByName[adams crossroads] = %v, want [0]", got)
	}

	// Parenthetical note must not leak into the index key.
	if got := idx.ByName["cedar grove"]; len(got) != 1 || got[0] != 3 {
		t.Errorf("ByName[cedar grove] = %v, want [3]", got)
	}

	// Blank names are indexed nowhere.
	for key, positions := range idx.ByName {
		for _, pos := range positions {
			if idx.Names[pos] == "" {
				t.Errorf("blank name indexed under %q", key)
			}
		}
	}

	if got := idx.ByCounty["dickson"]; len(got) != 2 {
		t.Errorf("ByCounty[dickson] has %d entries, want 2", len(got))
	}

	if got := idx.ByFirstWord["aaron"]; len(got) != 2 {
		t.Errorf("ByFirstWord[aaron] has %d entries, want 2", len(got))
	}
}

func TestBuildIndexPrecomputedForms(t *testing.T) {
	idx := BuildIndex(testEntries())

	if idx.Names[0] != "adams crossroads" {
		t.Errorf("Names[0] = %q, want %q", idx.Names[0], "adams crossroads")
	}
	if idx.Counties[1] != "clay" {
		t.Errorf("Counties[1] = %q, want %q", idx.Counties[1], "clay")
	}
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

func TestLoadPlaces(t *testing.T) {
	path := writeTempCSV(t, "places.csv",
		"Place_Name,County,PO_Start,PO_End\n"+
			"Adams Crossroads,Dickson,1855,1906\n"+
			"Aaron,Overton,1881,1904\n"+
			"No County Town,,1870,\n")

	records, err := LoadPlaces(path)
	if err != nil {
		t.Fatalf("LoadPlaces() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != 0 || records[2].ID != 2 {
		t.Errorf("record IDs not assigned from row order: %d, %d", records[0].ID, records[2].ID)
	}
	if records[0].Name != "Adams Crossroads" || records[0].County != "Dickson" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[2].County != "" {
		t.Errorf("empty county should stay empty, got %q", records[2].County)
	}
}

func TestLoadPlacesMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "bad.csv", "Name,County\nX,Y\n")
	if _, err := LoadPlaces(path); err == nil {
		t.Fatal("LoadPlaces() without Place_Name column: want error, got nil")
	}
}

func TestLoadEntries(t *testing.T) {
	path := writeTempCSV(t, "gaz.csv",
		"gaz_id,gaz_name,county_name,gaz_featureclass,prim_lat_dec,prim_long_dec\n"+
			"1001,Adams Crossroads,Dickson,Populated Place,36.0432,-87.2011\n"+
			"1002,Aaron Branch,Clay,Stream,,\n"+
			",Ghost Row,Dickson,Locale,35.0,-86.0\n")

	entries, err := LoadEntries(path)
	if err != nil {
		t.Fatalf("LoadEntries() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (missing-ID row skipped)", len(entries))
	}

	if entries[0].Lat == nil || *entries[0].Lat != 36.0432 {
		t.Errorf("entry 1001 latitude = %v, want 36.0432", entries[0].Lat)
	}
	if entries[1].Lat != nil {
		t.Error("entry 1002 latitude should be nil when column is empty")
	}
}
