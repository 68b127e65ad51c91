package engine

// FlowState is a point-in-time snapshot of material moving through the
// recovery chain: unit count, surface area and mass. Counts become
// fractional after yield losses; fractional unit-equivalents are expected
// and meaningful. Values are immutable; every loss application returns a
// new state, so callers that retain intermediates keep a full audit trail.
type FlowState struct {
	IGUs   float64 `json:"igus"`
	AreaM2 float64 `json:"area_m2"`
	MassKg float64 `json:"mass_kg"`
}

// ApplyYieldLoss scales all three flow fields by (1 - lossFraction),
// assuming lost units have batch-average size so count, area and mass
// shrink proportionally. lossFraction is expected in [0,1]; out-of-range
// values are not validated and propagate arithmetically.
func ApplyYieldLoss(state FlowState, lossFraction float64) FlowState {
	keep := 1.0 - lossFraction
	return FlowState{
		IGUs:   state.IGUs * keep,
		AreaM2: state.AreaM2 * keep,
		MassKg: state.MassKg * keep,
	}
}
