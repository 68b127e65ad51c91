package engine

// Stage names, in the exact spelling reports and plots key on. Order of
// accumulation in each scenario equals execution order.
const (
	StageDismantlingESite   = "Dismantling (E_site)"
	StagePackagingStillages = "Packaging (Stillages)"
	StagePackaging          = "Packaging"
	StageTransportA         = "Transport A"
	StageRepair             = "Repair"
	StageTransportB         = "Transport B"
	StageInstallation       = "Installation"
	StageDisassembly        = "Disassembly"
	StageRecondition        = "Recondition"
	StageAssembly           = "Assembly"
	StageRepurposing        = "Repurposing"
	StageDismantlingRemoval = "Dismantling/Removal"
	StageDismantling        = "Dismantling"
	StageBreaking           = "Breaking"
	StageTransportBFloat    = "Transport B (Float)"
	StageOpenLoopTransport  = "Open-Loop Transport"
)

// Scenario names.
const (
	ScenarioSystemReuse    = "System Reuse"
	ScenarioComponentReuse = "Component Reuse"
	ScenarioClosedLoop     = "Closed-Loop Recycling"
	ScenarioOpenLoop       = "Open-Loop Recycling"
)

// SystemReuseParams are the pre-collected inputs for the system reuse
// scenario. Collecting them belongs to the caller (CLI, config file); the
// runner itself never prompts.
type SystemReuseParams struct {
	// RemovalLossFraction is the yield loss at on-site removal, in [0,1].
	RemovalLossFraction float64

	// RepairRequired triggers the fixed repair yield loss. Repair itself is
	// modelled as emission-free.
	RepairRequired bool

	// Destination is the recipient building for the reused system.
	Destination Location
}

// ComponentReuseParams are the pre-collected inputs for component reuse.
type ComponentReuseParams struct {
	RemovalLossFraction float64

	// ReconditionRequired enables the reconditioning stage.
	ReconditionRequired bool

	// ReconditionKgCO2PerM2 applies to the post-disassembly area.
	ReconditionKgCO2PerM2 float64

	// AssemblyKgCO2PerM2 applies to the post-disassembly area.
	AssemblyKgCO2PerM2 float64

	// Destination is the installation site for the rebuilt IGUs.
	Destination Location
}

// RepurposeParams are the pre-collected inputs for component repurposing.
type RepurposeParams struct {
	RemovalLossFraction float64

	// Preset selects the repurposing intensity (light/medium/heavy).
	Preset RepurposePreset

	// Destination is the installation site for the repurposed product.
	Destination Location
}

// ClosedLoopParams are the pre-collected inputs for closed-loop recycling.
type ClosedLoopParams struct {
	// SendIntact ships whole IGUs in stillages; otherwise units are broken
	// on site and travel as bulk cullet.
	SendIntact bool

	RemovalLossFraction float64

	// BreakingLossFraction and BreakingKgCO2PerM2 apply only when units are
	// broken on site (SendIntact false).
	BreakingLossFraction float64
	BreakingKgCO2PerM2   float64

	// FloatPlant is the float glass plant receiving the closed-loop cullet.
	FloatPlant Location
}

// OpenLoopParams are the pre-collected inputs for open-loop recycling.
type OpenLoopParams struct {
	SendIntact bool

	RemovalLossFraction  float64
	BreakingLossFraction float64
	BreakingKgCO2PerM2   float64

	// ModelOnwardTransport enables the two downstream cullet legs.
	ModelOnwardTransport bool
	GlasswoolPlant       Location
	ContainerPlant       Location
}

// yieldPercent is the guarded area-basis yield of a scenario.
func yieldPercent(initial, final FlowState) float64 {
	if initial.AreaM2 <= 0 {
		return 0
	}
	return final.AreaM2 / initial.AreaM2 * 100.0
}
