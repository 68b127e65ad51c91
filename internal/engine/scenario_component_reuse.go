package engine

import (
	"context"

	"github.com/SimosManiatis/vitrify/internal/logging"
)

// RunComponentReuse executes the component reuse scenario:
//
//	removal → transport A → disassembly (fixed 20% loss) →
//	recondition (optional) → assembly → transport B
//
// Disassembly emissions are charged on the area entering the process
// (post-removal, pre-disassembly loss); reconditioning and assembly on the
// post-disassembly area.
func RunComponentReuse(
	ctx context.Context,
	p ProcessSettings,
	t TransportConfig,
	group IGUGroup,
	start FlowState,
	stats BatchStats,
	params ComponentReuseParams,
) ScenarioResult {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("scenario", ScenarioComponentReuse).
		Str("glazing", string(group.Glazing)).
		Float64("removal_loss", params.RemovalLossFraction).
		Bool("recondition", params.ReconditionRequired).
		Msg("starting scenario")

	postRemoval := ApplyYieldLoss(start, params.RemovalLossFraction)

	dismantling := stats.TotalAreaM2 * p.DismantlingKgCO2PerM2

	stillageA := StillageMassKg(postRemoval.IGUs, p)
	legA := ComputeLegEmissions(t, p.RouteAMode, LegA, postRemoval.MassKg, stillageA)

	packaging := postRemoval.IGUs * PackagingFactorPerIGU(p)

	postDisassembly := ApplyYieldLoss(postRemoval, ComponentReuseDisassemblyLoss)
	disassembly := postRemoval.AreaM2 * DisassemblyKgCO2PerM2

	recondition := 0.0
	if params.ReconditionRequired {
		recondition = postDisassembly.AreaM2 * params.ReconditionKgCO2PerM2
	}

	assembly := postDisassembly.AreaM2 * params.AssemblyKgCO2PerM2

	tB := t.WithDestination(params.Destination)
	stillageB := StillageMassKg(postDisassembly.IGUs, p)
	legB := ComputeLegEmissions(tB, p.RouteBMode, LegB, postDisassembly.MassKg, stillageB)

	byStage := NewStageBreakdown()
	byStage.Add(StageDismantlingESite, dismantling)
	byStage.Add(StagePackaging, packaging)
	byStage.Add(StageTransportA, legA.KgCO2)
	byStage.Add(StageDisassembly, disassembly)
	byStage.Add(StageRecondition, recondition)
	byStage.Add(StageAssembly, assembly)
	byStage.Add(StageTransportB, legB.KgCO2)

	result := ScenarioResult{
		ScenarioName:  ScenarioComponentReuse,
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
		Str("scenario", ScenarioComponentReuse).
		Float64("total_kgco2", result.TotalKgCO2).
		Float64("yield_percent", result.YieldPercent).
		Msg("scenario complete")

	return result
}
