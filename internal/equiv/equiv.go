// Package equiv turns kgCO2e figures into everyday equivalencies (car
// kilometres, tree seedlings, home electricity days) for report output.
package equiv

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EPA greenhouse-gas equivalency factors (2024 edition), converted to
// metric where needed. Each factor is kg CO2e per unit of the activity, so
// equivalency = kg / factor.
const (
	// CarKmFactor is kg CO2e per kilometre for an average passenger car
	// (EPA per-mile figure divided by 1.609).
	CarKmFactor = 0.1193

	// TreeSeedlingFactor is kg CO2e absorbed by one tree seedling grown
	// for ten years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2e per day of average home electricity use.
	HomeDayFactor = 18.3
)

// MinThresholdKg is the smallest emission worth translating. Below this the
// equivalencies are meaninglessly small.
const MinThresholdKg = 1.0

// largeNumberThreshold switches to abbreviated "~X.X million" display.
const largeNumberThreshold = 1_000_000

var (
	// ErrNegativeValue rejects negative emission inputs.
	ErrNegativeValue = errors.New("emission value must be non-negative")

	// ErrNotFinite rejects NaN and infinite inputs.
	ErrNotFinite = errors.New("emission value must be finite")
)

// Equivalency is one translated figure.
type Equivalency struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Output is the set of equivalencies for one emission figure. IsEmpty marks
// inputs below the display threshold.
type Output struct {
	InputKg     float64       `json:"input_kg"`
	Results     []Equivalency `json:"results"`
	DisplayText string        `json:"display_text"`
	IsEmpty     bool          `json:"is_empty"`
}

//nolint:gochecknoglobals // global printer is idiomatic for x/text/message
var printer = message.NewPrinter(language.English)

// ForEmissions computes the equivalency set for an emission in kgCO2e.
func ForEmissions(kgCO2e float64) (Output, error) {
	if math.IsInf(kgCO2e, 0) || math.IsNaN(kgCO2e) {
		return Output{IsEmpty: true}, ErrNotFinite
	}
	if kgCO2e < 0 {
		return Output{IsEmpty: true}, ErrNegativeValue
	}
	if kgCO2e < MinThresholdKg {
		return Output{InputKg: kgCO2e, IsEmpty: true}, nil
	}

	carKm := kgCO2e / CarKmFactor
	trees := kgCO2e / TreeSeedlingFactor
	homeDays := kgCO2e / HomeDayFactor

	results := []Equivalency{
		{Value: carKm, Formatted: formatValue(carKm), Label: "km driven by car"},
		{Value: trees, Formatted: formatValue(trees), Label: "tree seedlings grown for 10 years"},
		{Value: homeDays, Formatted: formatValue(homeDays), Label: "days of home electricity"},
	}

	display := fmt.Sprintf("Equivalent to driving ~%s km, or %s tree seedlings grown for 10 years",
		results[0].Formatted, results[1].Formatted)

	return Output{
		InputKg:     kgCO2e,
		Results:     results,
		DisplayText: display,
	}, nil
}

// formatValue renders a count with separators, abbreviating at the million
// scale.
func formatValue(v float64) string {
	if v >= largeNumberThreshold {
		return fmt.Sprintf("~%.1f million", v/largeNumberThreshold)
	}
	if v < 10 {
		return printer.Sprintf("%.1f", v)
	}
	return printer.Sprintf("%d", int64(math.Round(v)))
}
