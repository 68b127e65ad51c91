package engine

import (
	"context"
	"fmt"

	"github.com/SimosManiatis/vitrify/internal/logging"
)

// RunRepurpose executes the component repurposing scenario:
//
//	removal → transport A → disassembly (fixed 10% loss) →
//	repurpose (intensity preset) → transport B
//
// Reconditioning is considered part of the repurposing intensity factor.
func RunRepurpose(
	ctx context.Context,
	p ProcessSettings,
	t TransportConfig,
	group IGUGroup,
	start FlowState,
	stats BatchStats,
	params RepurposeParams,
) ScenarioResult {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("scenario", "repurpose").
		Str("glazing", string(group.Glazing)).
		Str("preset", string(params.Preset)).
		Float64("removal_loss", params.RemovalLossFraction).
		Msg("starting scenario")

	postRemoval := ApplyYieldLoss(start, params.RemovalLossFraction)

	dismantling := stats.TotalAreaM2 * p.DismantlingKgCO2PerM2

	stillageA := StillageMassKg(postRemoval.IGUs, p)
	legA := ComputeLegEmissions(t, p.RouteAMode, LegA, postRemoval.MassKg, stillageA)

	packaging := postRemoval.IGUs * PackagingFactorPerIGU(p)

	postDisassembly := ApplyYieldLoss(postRemoval, RepurposeDisassemblyLoss)
	disassembly := postRemoval.AreaM2 * DisassemblyKgCO2PerM2

	repurpose := postDisassembly.AreaM2 * params.Preset.Factor()

	tB := t.WithDestination(params.Destination)
	stillageB := StillageMassKg(postDisassembly.IGUs, p)
	legB := ComputeLegEmissions(tB, p.RouteBMode, LegB, postDisassembly.MassKg, stillageB)

	byStage := NewStageBreakdown()
	byStage.Add(StageDismantlingESite, dismantling)
	byStage.Add(StagePackaging, packaging)
	byStage.Add(StageTransportA, legA.KgCO2)
	byStage.Add(StageDisassembly, disassembly)
	byStage.Add(StageRepurposing, repurpose)
	byStage.Add(StageTransportB, legB.KgCO2)

	result := ScenarioResult{
		ScenarioName:  fmt.Sprintf("Repurpose (%s)", params.Preset),
		TotalKgCO2:    byStage.Total(),
		ByStage:       byStage,
		InitialIGUs:   start.IGUs,
		FinalIGUs:     postDisassembly.IGUs,
		InitialAreaM2: start.AreaM2,
		FinalAreaM2:   postDisassembly.AreaM2,
		InitialMassKg: start.MassKg,
		FinalMassKg:   postDisassembly.MassKg,
		YieldPercent:  yieldPercent(start, postDisassembly),
	}

	log.Info().
		Str("component", "engine").
		Str("scenario", result.ScenarioName).
		Float64("total_kgco2", result.TotalKgCO2).
		Float64("yield_percent", result.YieldPercent).
		Msg("scenario complete")

	return result
}
