// Package engine implements the stage-chain emissions and flow model for
// end-of-life recovery of insulated glazing units (IGUs).
//
// The engine is a pure, single-pass computation: a batch of homogeneous IGU
// groups is aggregated into eligibility statistics, then one of five
// recovery scenarios threads a shrinking FlowState through an ordered list
// of process stages (dismantling, packaging, transport, disassembly,
// reconditioning/repurposing/recycling, re-transport, installation),
// accumulating a per-stage kgCO2e breakdown.
package engine

// GlazingType identifies the IGU build-up.
type GlazingType string

// Supported glazing types.
const (
	GlazingSingle GlazingType = "single"
	GlazingDouble GlazingType = "double"
	GlazingTriple GlazingType = "triple"
)

// PanesPerIGU returns the pane count for the glazing type.
// Returns ErrUnsupportedGlazing for anything outside single/double/triple.
func (g GlazingType) PanesPerIGU() (int, error) {
	switch g {
	case GlazingSingle:
		return 1, nil
	case GlazingDouble:
		return 2, nil
	case GlazingTriple:
		return 3, nil
	default:
		return 0, ErrUnsupportedGlazing
	}
}

// GlassType is the glass treatment of a pane. Metadata only; it does not
// influence the emissions model.
type GlassType string

// Glass treatments.
const (
	GlassAnnealed  GlassType = "annealed"
	GlassTempered  GlassType = "tempered"
	GlassLaminated GlassType = "laminated"
)

// CoatingType is the pane coating. Metadata only.
type CoatingType string

// Coatings.
const (
	CoatingNone         CoatingType = "none"
	CoatingHardLowE     CoatingType = "hard_lowE"
	CoatingSoftLowE     CoatingType = "soft_lowE"
	CoatingSolarControl CoatingType = "solar_control"
)

// SealantType is the sealant chemistry. Metadata only.
type SealantType string

// Sealant chemistries.
const (
	SealantPolysulfide  SealantType = "polysulfide"
	SealantPolyurethane SealantType = "polyurethane"
	SealantSilicone     SealantType = "silicone"
	SealantCombination  SealantType = "combination"
)

// SpacerMaterial is the cavity spacer material. Metadata only.
type SpacerMaterial string

// Spacer materials.
const (
	SpacerAluminium SpacerMaterial = "aluminium"
	SpacerSteel     SpacerMaterial = "steel"
	SpacerWarmEdge  SpacerMaterial = "warm_edge_composite"
)

// EdgeSealCondition is the visually assessed edge seal state.
type EdgeSealCondition string

// Edge seal conditions.
const (
	EdgeSealAcceptable   EdgeSealCondition = "acceptable"
	EdgeSealUnacceptable EdgeSealCondition = "unacceptable"
	EdgeSealNotAssessed  EdgeSealCondition = "not assessed"
)

// TransportMode selects the modes available on a transport leg.
type TransportMode string

// Transport modes. Road-only forces the ferry distance of a leg to zero,
// even when a ferry override is configured.
const (
	ModeRoad      TransportMode = "HGV lorry"
	ModeRoadFerry TransportMode = "HGV lorry+ferry"
)

// ProcessLevel distinguishes component-level from system-level processing
// in the full-chain breakdown.
type ProcessLevel string

// Process levels.
const (
	LevelComponent ProcessLevel = "component"
	LevelSystem    ProcessLevel = "system"
)

// SystemPath is the overall system path in the full-chain breakdown.
type SystemPath string

// System paths.
const (
	PathReuse     SystemPath = "reuse"
	PathRepurpose SystemPath = "repurpose"
)

// RepurposePreset selects the repurposing process intensity.
type RepurposePreset string

// Repurpose intensity presets.
const (
	RepurposeLight  RepurposePreset = "light"
	RepurposeMedium RepurposePreset = "medium"
	RepurposeHeavy  RepurposePreset = "heavy"
)

// Factor returns the kgCO2e/m² intensity for the preset. Unknown presets
// fall back to the medium factor.
func (p RepurposePreset) Factor() float64 {
	switch p {
	case RepurposeLight:
		return RepurposeLightKgCO2PerM2
	case RepurposeHeavy:
		return RepurposeHeavyKgCO2PerM2
	default:
		return RepurposeMediumKgCO2PerM2
	}
}

// Location is a geographic point in degrees. Immutable value.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// TransportConfig describes the transport network between the three key
// sites and the emission intensity of each mode:
//   - Origin: the donor building (on-site removal)
//   - Processor: the main processing site
//   - Reuse: the second site; reassigned per scenario to whichever
//     destination is relevant (reuse building, float plant, ...)
//
// Scenario runners never mutate a TransportConfig in place: destination and
// factor changes go through WithDestination / WithTruckFactor, which return
// derived copies.
type TransportConfig struct {
	Origin    Location `yaml:"origin"`
	Processor Location `yaml:"processor"`
	Reuse     Location `yaml:"reuse"`

	// BackhaulFactor (>1) amortizes the empty return trip onto the loaded leg.
	BackhaulFactor float64 `yaml:"backhaul_factor"`

	// TruckFactor and FerryFactor are emission intensities in kgCO2e/tkm.
	TruckFactor float64 `yaml:"truck_factor"`
	FerryFactor float64 `yaml:"ferry_factor"`

	TruckCapacityT float64 `yaml:"truck_capacity_t"`
	FerryCapacityT float64 `yaml:"ferry_capacity_t"`

	// Fallback distances (km) used when a leg's endpoints coincide or the
	// great-circle distance cannot be computed.
	FallbackAKm float64 `yaml:"fallback_a_km"`
	FallbackBKm float64 `yaml:"fallback_b_km"`

	// Optional per-leg distance overrides (km). An override always wins,
	// even over a computed great-circle distance.
	TruckAOverrideKm *float64 `yaml:"truck_a_override_km,omitempty"`
	FerryAOverrideKm *float64 `yaml:"ferry_a_override_km,omitempty"`
	TruckBOverrideKm *float64 `yaml:"truck_b_override_km,omitempty"`
	FerryBOverrideKm *float64 `yaml:"ferry_b_override_km,omitempty"`
}

// WithDestination returns a copy of the config with the reuse site replaced.
func (c TransportConfig) WithDestination(loc Location) TransportConfig {
	c.Reuse = loc
	return c
}

// WithTruckFactor returns a copy of the config with the truck emission
// factor replaced (preset selection).
func (c TransportConfig) WithTruckFactor(kgCO2PerTkm float64) TransportConfig {
	c.TruckFactor = kgCO2PerTkm
	return c
}

// ProcessSettings holds the global yield/loss rates, route modes, stillage
// parameters and stage emission factors for one run. Read-only during
// scenario execution.
type ProcessSettings struct {
	// Yield rates, all fractions in [0,1].
	BreakageRate         float64 `yaml:"breakage_rate"`
	HumidityFailureRate  float64 `yaml:"humidity_failure_rate"`
	SplitYield           float64 `yaml:"split_yield"`
	RemanufacturingYield float64 `yaml:"remanufacturing_yield"`

	RouteAMode TransportMode `yaml:"route_a_mode"`
	RouteBMode TransportMode `yaml:"route_b_mode"`

	IGUsPerStillage     int     `yaml:"igus_per_stillage"`
	StillageMassEmptyKg float64 `yaml:"stillage_mass_empty_kg"`
	MaxTruckLoadKg      float64 `yaml:"max_truck_load_kg"`

	// ProcessLevel and SystemPath are consumed by the full-chain breakdown
	// only, not by the per-scenario runners.
	ProcessLevel ProcessLevel `yaml:"process_level"`
	SystemPath   SystemPath   `yaml:"system_path"`

	// DismantlingKgCO2PerM2 is the on-site removal factor (E_site).
	DismantlingKgCO2PerM2 float64 `yaml:"dismantling_kgco2_per_m2"`

	IncludeStillageEmbodied bool `yaml:"include_stillage_embodied"`

	RepurposePreset     RepurposePreset `yaml:"repurpose_preset"`
	RepurposeKgCO2PerM2 float64         `yaml:"repurpose_kgco2_per_m2"`
}

// IGUCondition holds the per-batch visual condition flags that drive
// eligibility filtering.
type IGUCondition struct {
	EdgeSeal     EdgeSealCondition `yaml:"edge_seal"`
	Fogging      bool              `yaml:"fogging"`
	CracksChips  bool              `yaml:"cracks_chips"`
	AgeYears     float64           `yaml:"age_years"`
	ReuseAllowed bool              `yaml:"reuse_allowed"`
}

// IGUGroup describes a homogeneous batch of identical IGUs: geometry,
// build-up, materials and condition. Cavity thicknesses drive both the
// build-up depth and the derived secondary seal thickness.
type IGUGroup struct {
	Quantity     int     `yaml:"quantity"`
	UnitWidthMM  float64 `yaml:"unit_width_mm"`
	UnitHeightMM float64 `yaml:"unit_height_mm"`

	Glazing GlazingType `yaml:"glazing_type"`

	GlassOuter       GlassType      `yaml:"glass_outer"`
	GlassInner       GlassType      `yaml:"glass_inner"`
	Coating          CoatingType    `yaml:"coating"`
	SealantSecondary SealantType    `yaml:"sealant_secondary"`
	SealantPrimary   SealantType    `yaml:"sealant_primary,omitempty"` // metadata only
	Spacer           SpacerMaterial `yaml:"spacer"`
	Interlayer       string         `yaml:"interlayer,omitempty"`

	Condition IGUCondition `yaml:"condition"`

	ThicknessOuterMM  float64 `yaml:"thickness_outer_mm"`
	ThicknessInnerMM  float64 `yaml:"thickness_inner_mm"`
	ThicknessCentreMM float64 `yaml:"thickness_centre_mm,omitempty"` // triple only
	CavityMM          float64 `yaml:"cavity_mm"`
	Cavity2MM         float64 `yaml:"cavity_2_mm,omitempty"` // triple only
	DepthMM           float64 `yaml:"depth_mm"`

	// MassPerM2Override replaces the glazing-type default when set.
	MassPerM2Override *float64 `yaml:"mass_per_m2_override,omitempty"`
}

// SealGeometry holds the global seal geometry, constant across the batch.
// Secondary seal thickness is not constant: it is derived per group from
// the cavity thickness(es), see SecondarySealThicknessMM.
type SealGeometry struct {
	PrimaryThicknessMM float64 `yaml:"primary_thickness_mm"`
	PrimaryWidthMM     float64 `yaml:"primary_width_mm"`
	SecondaryWidthMM   float64 `yaml:"secondary_width_mm"`
}

// BatchInput wraps a complete calculation batch for the full-chain path.
type BatchInput struct {
	Transport TransportConfig
	Processes ProcessSettings
	Groups    []IGUGroup
}

// BatchStats are the aggregation results for a batch: total, acceptable and
// remanufacturable counts with their areas under the uniform-area
// approximation.
type BatchStats struct {
	TotalIGUs            float64 `json:"total_igus"`
	TotalAreaM2          float64 `json:"total_area_m2"`
	AcceptableIGUs       float64 `json:"acceptable_igus"`
	AcceptableAreaM2     float64 `json:"acceptable_area_m2"`
	RemanufacturedIGUs   float64 `json:"remanufactured_igus"`
	RemanufacturedAreaM2 float64 `json:"remanufactured_area_m2"`
	AverageAreaPerIGU    float64 `json:"average_area_per_igu"`
}

// MassTotals are the batch mass figures derived from BatchStats.
type MassTotals struct {
	TotalMassKg          float64 `json:"total_mass_kg"`
	TotalMassT           float64 `json:"total_mass_t"`
	AcceptableMassKg     float64 `json:"acceptable_mass_kg"`
	RemanufacturedMassKg float64 `json:"remanufactured_mass_kg"`
	AvgMassPerIGUKg      float64 `json:"avg_mass_per_igu_kg"`
}

// EmissionBreakdown is the full-chain, batch-level breakdown used for
// project-level reporting. Extra carries open-ended diagnostic scalars.
type EmissionBreakdown struct {
	DismantlingKgCO2     float64            `json:"dismantling_kgco2"`
	PackagingKgCO2       float64            `json:"packaging_kgco2"`
	TransportAKgCO2      float64            `json:"transport_a_kgco2"`
	DisassemblyKgCO2     float64            `json:"disassembly_kgco2"`
	RemanufacturingKgCO2 float64            `json:"remanufacturing_kgco2"`
	QualityControlKgCO2  float64            `json:"quality_control_kgco2"`
	TransportBKgCO2      float64            `json:"transport_b_kgco2"`
	TotalKgCO2           float64            `json:"total_kgco2"`
	Extra                map[string]float64 `json:"extra"`
}

// ScenarioResult summarizes one scenario run. ByStage preserves execution
// order; YieldPercent is scenario-specific (area ratio for reuse/repurpose
// paths, the fixed cullet-stream share for recycling paths).
type ScenarioResult struct {
	ScenarioName  string         `json:"scenario_name"`
	TotalKgCO2    float64        `json:"total_emissions_kgco2"`
	ByStage       StageBreakdown `json:"by_stage"`
	InitialIGUs   float64        `json:"initial_igus"`
	FinalIGUs     float64        `json:"final_igus"`
	InitialAreaM2 float64        `json:"initial_area_m2"`
	FinalAreaM2   float64        `json:"final_area_m2"`
	InitialMassKg float64        `json:"initial_mass_kg"`
	FinalMassKg   float64        `json:"final_mass_kg"`
	YieldPercent  float64        `json:"yield_percent"`
}
