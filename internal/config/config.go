// Package config defines the matching engine configuration. Every
// threshold and penalty the strategies use lives here so multiple
// engines with different strictness can run side by side; there is no
// process-wide default state.
package config

import (
	"fmt"
	"runtime"
)

// Strategy names accepted in DisabledStrategies.
var knownStrategies = map[string]bool{
	"exact":        true,
	"variation":    true,
	"county_fuzzy": true,
	"global_fuzzy": true,
	"leading_word": true,
}

// Config carries all tunable matching parameters. Construct with
// Default() and override fields before passing it to engine.New; the
// engine validates once at construction and never re-reads it.
type Config struct {
	// ConfidenceThreshold is the floor a candidate must reach to
	// survive aggregation into a result.
	ConfidenceThreshold float64

	// MinNameLength rejects names too short to discriminate reliably;
	// records below it yield no candidates from any strategy.
	MinNameLength int

	// Exact strategy scores.
	ExactNoCountyScore       float64
	ExactCountyMismatchScore float64

	// Declared-variation strategy.
	VariationBaseScore     float64
	VariationCountyBonus   float64
	VariationCountyPenalty float64

	// County-restricted fuzzy strategy.
	CountyFuzzyThreshold float64

	// Global fuzzy strategy. The penalty is the main guard against
	// cross-county false positives.
	GlobalFuzzyThreshold     float64
	GlobalFuzzyMinLength     int
	GlobalFuzzyCountyPenalty float64

	// Leading-word strategy. MaxScore caps it below high confidence
	// even when every bonus applies.
	LeadingWordMinLength     int
	LeadingWordBaseScore     float64
	LeadingWordTwoWordBonus  float64
	LeadingWordCountyBonus   float64
	LeadingWordCountyPenalty float64
	LeadingWordMaxScore      float64

	// Geographic resolution.
	GeoEnabled          bool
	CollapseEnabled     bool
	CollapseMarginMiles float64
	// DistanceBands are the ascending band boundaries in miles;
	// BandDeltas holds one confidence delta per band plus a final
	// delta for everything beyond the last boundary.
	DistanceBands [4]float64
	BandDeltas    [5]float64

	// DisabledStrategies lists strategy names to skip entirely.
	DisabledStrategies []string

	// Batch processing.
	Workers      int
	ShowProgress bool
}

// Default returns the recommended configuration. The fuzzy thresholds
// and penalty magnitudes are empirically chosen defaults, not derived
// values; tune them per dataset.
func Default() *Config {
	return &Config{
		ConfidenceThreshold: 80,
		MinNameLength:       2,

		ExactNoCountyScore:       95,
		ExactCountyMismatchScore: 65,

		VariationBaseScore:     75,
		VariationCountyBonus:   10,
		VariationCountyPenalty: 15,

		CountyFuzzyThreshold: 85,

		GlobalFuzzyThreshold:     90,
		GlobalFuzzyMinLength:     3,
		GlobalFuzzyCountyPenalty: 30,

		LeadingWordMinLength:     4,
		LeadingWordBaseScore:     55,
		LeadingWordTwoWordBonus:  10,
		LeadingWordCountyBonus:   15,
		LeadingWordCountyPenalty: 20,
		LeadingWordMaxScore:      75,

		GeoEnabled:          false,
		CollapseEnabled:     true,
		CollapseMarginMiles: 10,
		DistanceBands:       [4]float64{5, 10, 20, 50},
		BandDeltas:          [5]float64{10, 5, 0, -10, -20},

		Workers:      runtime.NumCPU(),
		ShowProgress: true,
	}
}

// Validate checks every parameter and returns a descriptive error for
// the first violation. Called at engine construction, before any record
// is processed.
func (c *Config) Validate() error {
	inRange := func(name string, v float64) error {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be in [0, 100], got %.2f", name, v)
		}
		return nil
	}

	scores := []struct {
		name  string
		value float64
	}{
		{"ConfidenceThreshold", c.ConfidenceThreshold},
		{"ExactNoCountyScore", c.ExactNoCountyScore},
		{"ExactCountyMismatchScore", c.ExactCountyMismatchScore},
		{"VariationBaseScore", c.VariationBaseScore},
		{"CountyFuzzyThreshold", c.CountyFuzzyThreshold},
		{"GlobalFuzzyThreshold", c.GlobalFuzzyThreshold},
		{"LeadingWordBaseScore", c.LeadingWordBaseScore},
		{"LeadingWordMaxScore", c.LeadingWordMaxScore},
	}
	for _, s := range scores {
		if err := inRange(s.name, s.value); err != nil {
			return err
		}
	}

	penalties := []struct {
		name  string
		value float64
	}{
		{"VariationCountyBonus", c.VariationCountyBonus},
		{"VariationCountyPenalty", c.VariationCountyPenalty},
		{"GlobalFuzzyCountyPenalty", c.GlobalFuzzyCountyPenalty},
		{"LeadingWordTwoWordBonus", c.LeadingWordTwoWordBonus},
		{"LeadingWordCountyBonus", c.LeadingWordCountyBonus},
		{"LeadingWordCountyPenalty", c.LeadingWordCountyPenalty},
	}
	for _, p := range penalties {
		if p.value < 0 {
			return fmt.Errorf("%s must not be negative, got %.2f", p.name, p.value)
		}
	}

	if c.MinNameLength < 1 {
		return fmt.Errorf("MinNameLength must be at least 1, got %d", c.MinNameLength)
	}
	if c.GlobalFuzzyMinLength < 1 {
		return fmt.Errorf("GlobalFuzzyMinLength must be at least 1, got %d", c.GlobalFuzzyMinLength)
	}
	if c.LeadingWordMinLength < 1 {
		return fmt.Errorf("LeadingWordMinLength must be at least 1, got %d", c.LeadingWordMinLength)
	}
	if c.Workers < 1 {
		return fmt.Errorf("Workers must be at least 1, got %d", c.Workers)
	}
	if c.CollapseMarginMiles <= 0 {
		return fmt.Errorf("CollapseMarginMiles must be positive, got %.2f", c.CollapseMarginMiles)
	}

	for i := 0; i < len(c.DistanceBands); i++ {
		if c.DistanceBands[i] <= 0 {
			return fmt.Errorf("DistanceBands[%d] must be positive, got %.2f", i, c.DistanceBands[i])
		}
		if i > 0 && c.DistanceBands[i] <= c.DistanceBands[i-1] {
			return fmt.Errorf("DistanceBands must be strictly ascending: band %d (%.1f) <= band %d (%.1f)",
				i, c.DistanceBands[i], i-1, c.DistanceBands[i-1])
		}
	}

	for _, name := range c.DisabledStrategies {
		if !knownStrategies[name] {
			return fmt.Errorf("unknown strategy %q in DisabledStrategies", name)
		}
	}

	return nil
}

// StrategyDisabled reports whether a strategy name is listed in
// DisabledStrategies.
func (c *Config) StrategyDisabled(name string) bool {
	for _, s := range c.DisabledStrategies {
		if s == name {
			return true
		}
	}
	return false
}

// BandDelta returns the confidence delta for a distance in miles.
func (c *Config) BandDelta(miles float64) float64 {
	for i, boundary := range c.DistanceBands {
		if miles <= boundary {
			return c.BandDeltas[i]
		}
	}
	return c.BandDeltas[len(c.BandDeltas)-1]
}
