package engine

import (
	"fmt"
	"math"
)

// Acceptable reports whether a group's condition qualifies it for reuse:
// reuse allowed, no cracks or chips, edge seal not unacceptable, no fogging.
func Acceptable(c IGUCondition) bool {
	return c.ReuseAllowed &&
		!c.CracksChips &&
		c.EdgeSeal != EdgeSealUnacceptable &&
		!c.Fogging
}

// AggregateGroups aggregates IGU groups at batch level into total,
// acceptable and remanufacturable counts and areas.
//
// The acceptable count is reduced sequentially by the breakage and humidity
// failure rates. Pane splitting converts the surviving count into panes,
// applies the split yield, quantizes back to whole-IGU equivalents (floor)
// and applies the remanufacturing yield, so the remanufactured count is
// fractional again after quantization.
//
// Areas use the uniform-area approximation: every IGU carries the batch
// average area. An empty batch returns zero stats rather than an error.
// Mixed glazing types return ErrMixedGlazing.
func AggregateGroups(groups []IGUGroup, p ProcessSettings) (BatchStats, error) {
	var (
		totalIGUs      int
		totalAreaM2    float64
		acceptableIGUs int
	)

	for _, g := range groups {
		areaPerIGU := AreaPerUnitM2(g)
		totalIGUs += g.Quantity
		totalAreaM2 += areaPerIGU * float64(g.Quantity)

		if Acceptable(g.Condition) {
			acceptableIGUs += g.Quantity
		}
	}

	afterBreakage := float64(acceptableIGUs) * (1.0 - p.BreakageRate)
	afterHumidity := afterBreakage * (1.0 - p.HumidityFailureRate)

	panesPerIGU, err := batchPanesPerIGU(groups)
	if err != nil {
		return BatchStats{}, err
	}

	totalPanes := afterHumidity * float64(panesPerIGU) * p.SplitYield
	remanufacturedRaw := math.Floor(totalPanes / float64(panesPerIGU))
	remanufactured := remanufacturedRaw * p.RemanufacturingYield

	averageArea := 0.0
	if totalIGUs > 0 {
		averageArea = totalAreaM2 / float64(totalIGUs)
	}

	return BatchStats{
		TotalIGUs:            float64(totalIGUs),
		TotalAreaM2:          totalAreaM2,
		AcceptableIGUs:       float64(acceptableIGUs),
		AcceptableAreaM2:     averageArea * float64(acceptableIGUs),
		RemanufacturedIGUs:   remanufactured,
		RemanufacturedAreaM2: averageArea * remanufactured,
		AverageAreaPerIGU:    averageArea,
	}, nil
}

// batchPanesPerIGU returns the pane count shared by every group in the
// batch. Mixing glazing types is a structural violation.
func batchPanesPerIGU(groups []IGUGroup) (int, error) {
	if len(groups) == 0 {
		return 1, nil
	}
	glazing := groups[0].Glazing
	for _, g := range groups[1:] {
		if g.Glazing != glazing {
			return 0, ErrMixedGlazing
		}
	}
	panes, err := glazing.PanesPerIGU()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, glazing)
	}
	return panes, nil
}

// ComputeMassTotals derives batch mass figures from the aggregated stats.
// Acceptable and remanufactured masses use the average mass per IGU, so
// they stay consistent with the uniform-area approximation.
func ComputeMassTotals(groups []IGUGroup, stats BatchStats) (MassTotals, error) {
	totalMassKg := 0.0
	for _, g := range groups {
		massPerM2, err := MassPerM2(g)
		if err != nil {
			return MassTotals{}, err
		}
		totalMassKg += AreaPerUnitM2(g) * float64(g.Quantity) * massPerM2
	}

	avgMassPerIGU := 0.0
	if stats.TotalIGUs > 0 {
		avgMassPerIGU = totalMassKg / stats.TotalIGUs
	}

	return MassTotals{
		TotalMassKg:          totalMassKg,
		TotalMassT:           totalMassKg / 1000.0,
		AcceptableMassKg:     avgMassPerIGU * stats.AcceptableIGUs,
		RemanufacturedMassKg: avgMassPerIGU * stats.RemanufacturedIGUs,
		AvgMassPerIGUKg:      avgMassPerIGU,
	}, nil
}

// PackagingFactorPerIGU allocates the stillage manufacturing emission to a
// single IGU: manufacture cost over lifetime cycles times rack capacity.
// Returns 0 when embodied stillage emissions are excluded or the
// parameters are degenerate.
func PackagingFactorPerIGU(p ProcessSettings) float64 {
	if !p.IncludeStillageEmbodied {
		return 0
	}
	if p.IGUsPerStillage <= 0 || StillageLifetimeCycles <= 0 {
		return 0
	}
	return StillageManufactureKgCO2 / (float64(StillageLifetimeCycles) * float64(p.IGUsPerStillage))
}

// FlowFromAcceptable seeds a FlowState from the acceptable portion of the
// batch (reuse and repurpose scenarios).
func FlowFromAcceptable(stats BatchStats, masses MassTotals) FlowState {
	return FlowState{
		IGUs:   stats.AcceptableIGUs,
		AreaM2: stats.AcceptableAreaM2,
		MassKg: masses.AcceptableMassKg,
	}
}

// FlowFromTotals seeds a FlowState from the whole batch (recycling
// scenarios accept any condition).
func FlowFromTotals(stats BatchStats, masses MassTotals) FlowState {
	return FlowState{
		IGUs:   stats.TotalIGUs,
		AreaM2: stats.TotalAreaM2,
		MassKg: masses.TotalMassKg,
	}
}
