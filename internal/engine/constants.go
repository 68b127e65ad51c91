package engine

// Stage emission factors (kgCO2e per m² of IGU surface area).
const (
	// DismantlingKgCO2PerM2Default is the on-site removal factor (E_site):
	// energy charged per m² of IGU surface removed from the donor building.
	DismantlingKgCO2PerM2Default = 0.15

	// RemanufacturingKgCO2PerM2 applies to the remanufactured area on the
	// component-level full chain.
	RemanufacturingKgCO2PerM2 = 7.5

	// DisassemblyKgCO2PerM2 applies to the area entering disassembly.
	DisassemblyKgCO2PerM2 = 0.5

	// InstallSystemKgCO2PerM2 is the installation energy for system routes.
	InstallSystemKgCO2PerM2 = 0.25
)

// Repurposing intensity presets (kgCO2e/m²).
const (
	RepurposeLightKgCO2PerM2  = 0.5
	RepurposeMediumKgCO2PerM2 = 1.0
	RepurposeHeavyKgCO2PerM2  = 2.0
)

// Stillage (reusable transport rack) parameters.
const (
	// StillageManufactureKgCO2 is the embodied manufacturing emission of one
	// stillage, amortized over its lifetime cycles and rack capacity.
	StillageManufactureKgCO2 = 500.0

	StillageLifetimeCycles = 100

	IGUsPerStillageDefault     = 20
	StillageMassEmptyKgDefault = 300.0
	MaxTruckLoadKgDefault      = 20000.0
)

// Transport emission intensities in kgCO2e per tonne-kilometre (tkm):
// tonnes of payload (IGUs plus stillages) times kilometres travelled.
const (
	TruckFactorDefault = 0.04  // HGV lorry
	FerryFactorDefault = 0.045 // ferry

	// BackhaulFactorDefault amortizes the empty return trip onto the loaded
	// leg.
	BackhaulFactorDefault = 1.3

	TruckCapacityTDefault = 20.0
	FerryCapacityTDefault = 1000.0

	FallbackAKmDefault = 100.0
	FallbackBKmDefault = 100.0
)

// Approximate surface mass of IGUs by glazing type (kg/m²).
// Single assumes ~4 mm float glass.
const (
	MassPerM2Single = 10.0
	MassPerM2Double = 20.0
	MassPerM2Triple = 30.0
)

// Global yield rates (fractions in [0,1]).
const (
	BreakageRateDefault         = 0.05
	HumidityFailureRateDefault  = 0.05
	SplitYieldDefault           = 0.95
	RemanufacturingYieldDefault = 0.90
)

// Fixed scenario yield constants.
const (
	// RepairLossFraction is applied when a system-reuse run requires repair.
	RepairLossFraction = 0.20

	// ComponentReuseDisassemblyLoss is always applied on the component
	// reuse path.
	ComponentReuseDisassemblyLoss = 0.20

	// RepurposeDisassemblyLoss is always applied on the repurpose path.
	RepurposeDisassemblyLoss = 0.10
)

// Cullet stream shares at the recycling processor.
const (
	// Closed loop: share of cullet returned to the float line; the landfill
	// and glasswool residues do not propagate.
	CulletFloatShare    = 0.80
	CulletLandfillShare = 0.10
	CulletGlasswoolOut  = 0.10

	// Open loop: glasswool plus container glass form the useful share.
	CulletGlasswoolShare = 0.10
	CulletContainerShare = 0.10
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// TruckFactorForPreset maps an HGV lorry emission preset name to its
// kgCO2e/tkm factor. Returns ErrUnknownPreset for unrecognized names.
//
//	eu_legacy   = 0.06   (older diesel HGV lorries)
//	eu_current  = 0.04   (current EU average HGV lorry)
//	best_diesel = 0.03   (best-in-class diesel HGV lorry)
//	ze_truck    = 0.0075 (electric HGV lorry, grid mix)
func TruckFactorForPreset(name string) (float64, error) {
	switch name {
	case "eu_legacy":
		return 0.06, nil
	case "eu_current":
		return 0.04, nil
	case "best_diesel":
		return 0.03, nil
	case "ze_truck":
		return 0.0075, nil
	default:
		return 0, ErrUnknownPreset
	}
}

// BreakageRateForPreset maps a breakage preset name to its loss fraction.
// Returns ErrUnknownPreset for unrecognized names.
func BreakageRateForPreset(name string) (float64, error) {
	switch name {
	case "very_low":
		return 0.005, nil
	case "low":
		return 0.01, nil
	case "medium":
		return 0.03, nil
	case "high":
		return 0.05, nil
	default:
		return 0, ErrUnknownPreset
	}
}

// DefaultTransportConfig returns a TransportConfig carrying the default
// factors and fallback distances. The reuse site starts at the processor
// until a scenario selects its destination.
func DefaultTransportConfig(origin, processor Location) TransportConfig {
	return TransportConfig{
		Origin:         origin,
		Processor:      processor,
		Reuse:          processor,
		BackhaulFactor: BackhaulFactorDefault,
		TruckFactor:    TruckFactorDefault,
		FerryFactor:    FerryFactorDefault,
		TruckCapacityT: TruckCapacityTDefault,
		FerryCapacityT: FerryCapacityTDefault,
		FallbackAKm:    FallbackAKmDefault,
		FallbackBKm:    FallbackBKmDefault,
	}
}

// DefaultProcessSettings returns the default process assumptions.
func DefaultProcessSettings() ProcessSettings {
	return ProcessSettings{
		BreakageRate:            BreakageRateDefault,
		HumidityFailureRate:     HumidityFailureRateDefault,
		SplitYield:              SplitYieldDefault,
		RemanufacturingYield:    RemanufacturingYieldDefault,
		RouteAMode:              ModeRoad,
		RouteBMode:              ModeRoadFerry,
		IGUsPerStillage:         IGUsPerStillageDefault,
		StillageMassEmptyKg:     StillageMassEmptyKgDefault,
		MaxTruckLoadKg:          MaxTruckLoadKgDefault,
		ProcessLevel:            LevelComponent,
		SystemPath:              PathReuse,
		DismantlingKgCO2PerM2:   DismantlingKgCO2PerM2Default,
		IncludeStillageEmbodied: false,
		RepurposePreset:         RepurposeMedium,
		RepurposeKgCO2PerM2:     RepurposeMediumKgCO2PerM2,
	}
}
