// Package gazetteer holds the two source datasets and the lookup
// indexes built over the authoritative feature catalog.
package gazetteer

// PlaceRecord is one row of the historical place-name registry. Records
// are immutable inputs; the engine never mutates them.
type PlaceRecord struct {
	ID      int
	Name    string
	County  string // may be empty
	POStart string // operating interval, opaque to the engine
	POEnd   string
	Notes   string
}

// Entry is one row of the geographic feature catalog.
type Entry struct {
	ID           string
	Name         string
	County       string
	FeatureClass string // e.g. "Populated Place", "Stream", "Ridge"
	Lat          *float64
	Lon          *float64
}
