package engine

import (
	"context"

	"github.com/SimosManiatis/vitrify/internal/logging"
)

// RunSystemReuse executes the system reuse scenario:
//
//	removal (yield loss) → transport A → repair (optional, fixed loss) →
//	transport B → installation
//
// Dismantling is charged against the full pre-loss batch area: removal work
// happens on site before losses are known. Transport A re-derives its
// stillage count from the post-removal flow; transport B from the
// post-repair flow. The destination replaces the reuse site on a derived
// copy of the transport config.
func RunSystemReuse(
	ctx context.Context,
	p ProcessSettings,
	t TransportConfig,
	group IGUGroup,
	start FlowState,
	stats BatchStats,
	params SystemReuseParams,
) ScenarioResult {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("scenario", ScenarioSystemReuse).
		Str("glazing", string(group.Glazing)).
		Float64("removal_loss", params.RemovalLossFraction).
		Bool("repair", params.RepairRequired).
		Msg("starting scenario")

	postRemoval := ApplyYieldLoss(start, params.RemovalLossFraction)

	dismantling := stats.TotalAreaM2 * p.DismantlingKgCO2PerM2

	stillageA := StillageMassKg(postRemoval.IGUs, p)
	legA := ComputeLegEmissions(t, p.RouteAMode, LegA, postRemoval.MassKg, stillageA)

	packaging := postRemoval.IGUs * PackagingFactorPerIGU(p)

	repairKgCO2 := 0.0
	postRepair := postRemoval
	if params.RepairRequired {
		postRepair = ApplyYieldLoss(postRemoval, RepairLossFraction)
	}

	tB := t.WithDestination(params.Destination)
	stillageB := StillageMassKg(postRepair.IGUs, p)
	legB := ComputeLegEmissions(tB, p.RouteBMode, LegB, postRepair.MassKg, stillageB)

	install := postRepair.AreaM2 * InstallSystemKgCO2PerM2

	byStage := NewStageBreakdown()
	byStage.Add(StageDismantlingESite, dismantling)
	byStage.Add(StagePackagingStillages, packaging)
	byStage.Add(StageTransportA, legA.KgCO2)
	byStage.Add(StageRepair, repairKgCO2)
	byStage.Add(StageTransportB, legB.KgCO2)
	byStage.Add(StageInstallation, install)

	result := ScenarioResult{
		ScenarioName:  ScenarioSystemReuse,
		TotalKgCO2:    byStage.Total(),
		ByStage:       byStage,
		InitialIGUs:   start.IGUs,
		FinalIGUs:     postRepair.IGUs,
		InitialAreaM2: start.AreaM2,
		FinalAreaM2:   postRepair.AreaM2,
		InitialMassKg: start.MassKg,
		FinalMassKg:   postRepair.MassKg,
		YieldPercent:  yieldPercent(start, postRepair),
	}

	log.Info().
		Str("component", "engine").
		Str("scenario", ScenarioSystemReuse).
		Float64("total_kgco2", result.TotalKgCO2).
		Float64("yield_percent", result.YieldPercent).
		Msg("scenario complete")

	return result
}
