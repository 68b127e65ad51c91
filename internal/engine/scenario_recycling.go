package engine

import (
	"context"

	"github.com/SimosManiatis/vitrify/internal/logging"
)

// RunClosedLoopRecycling executes the closed-loop recycling scenario:
//
//	removal → breaking (only when not sent intact) → transport A →
//	float-plant split → transport B (bulk cullet, no stillages)
//
// At the processor the cullet splits 80% float glass / 10% landfill / 10%
// glasswool; only the float share propagates downstream. YieldPercent
// reports that fixed stream share, not a ratio of the threaded flow. The
// same constant reduces the flow, so the two agree by construction.
func RunClosedLoopRecycling(
	ctx context.Context,
	p ProcessSettings,
	t TransportConfig,
	group IGUGroup,
	start FlowState,
	params ClosedLoopParams,
) ScenarioResult {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("scenario", ScenarioClosedLoop).
		Str("glazing", string(group.Glazing)).
		Bool("send_intact", params.SendIntact).
		Msg("starting scenario")

	breakingLoss := 0.0
	if !params.SendIntact {
		breakingLoss = params.BreakingLossFraction
	}

	postRemoval := ApplyYieldLoss(start, params.RemovalLossFraction)
	postBreaking := ApplyYieldLoss(postRemoval, breakingLoss)

	dismantling := start.AreaM2 * p.DismantlingKgCO2PerM2

	breaking := 0.0
	if !params.SendIntact {
		breaking = postRemoval.AreaM2 * params.BreakingKgCO2PerM2
	}

	// Intact units travel racked; broken cullet travels as bulk.
	stillageA := 0.0
	if params.SendIntact {
		stillageA = StillageMassKg(postBreaking.IGUs, p)
	}
	legA := ComputeLegEmissions(t, p.RouteAMode, LegA, postBreaking.MassKg, stillageA)

	floatFlow := ApplyYieldLoss(postBreaking, 1.0-CulletFloatShare)

	tB := t.WithDestination(params.FloatPlant)
	legB := ComputeLegEmissions(tB, p.RouteBMode, LegB, floatFlow.MassKg, 0)

	byStage := NewStageBreakdown()
	byStage.Add(StageDismantlingRemoval, dismantling)
	byStage.Add(StageBreaking, breaking)
	byStage.Add(StageTransportA, legA.KgCO2)
	byStage.Add(StageTransportBFloat, legB.KgCO2)

	result := ScenarioResult{
		ScenarioName:  ScenarioClosedLoop,
		TotalKgCO2:    byStage.Total(),
		ByStage:       byStage,
		InitialIGUs:   start.IGUs,
		FinalIGUs:     floatFlow.IGUs, // unit-equivalents of cullet, not whole IGUs
		InitialAreaM2: start.AreaM2,
		FinalAreaM2:   floatFlow.AreaM2,
		InitialMassKg: start.MassKg,
		FinalMassKg:   floatFlow.MassKg,
		YieldPercent:  CulletFloatShare * 100.0,
	}

	log.Info().
		Str("component", "engine").
		Str("scenario", ScenarioClosedLoop).
		Float64("total_kgco2", result.TotalKgCO2).
		Msg("scenario complete")

	return result
}

// RunOpenLoopRecycling executes the open-loop recycling scenario:
//
//	removal → breaking (only when not sent intact) → transport A →
//	split (10% glasswool + 10% container glass useful, 80% lost) →
//	optional onward transport to the two named plants
//
// The onward cullet legs are simplified: truck only, no backhaul, each
// carrying its stream's share of the post-breaking mass. YieldPercent
// reports the fixed 20% useful stream share.
func RunOpenLoopRecycling(
	ctx context.Context,
	p ProcessSettings,
	t TransportConfig,
	group IGUGroup,
	start FlowState,
	params OpenLoopParams,
) ScenarioResult {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("scenario", ScenarioOpenLoop).
		Str("glazing", string(group.Glazing)).
		Bool("send_intact", params.SendIntact).
		Bool("onward_transport", params.ModelOnwardTransport).
		Msg("starting scenario")

	breakingLoss := 0.0
	if !params.SendIntact {
		breakingLoss = params.BreakingLossFraction
	}

	postRemoval := ApplyYieldLoss(start, params.RemovalLossFraction)
	postBreaking := ApplyYieldLoss(postRemoval, breakingLoss)

	dismantling := start.AreaM2 * p.DismantlingKgCO2PerM2

	breaking := 0.0
	if !params.SendIntact {
		breaking = postRemoval.AreaM2 * params.BreakingKgCO2PerM2
	}

	stillageA := 0.0
	if params.SendIntact {
		stillageA = StillageMassKg(postBreaking.IGUs, p)
	}
	legA := ComputeLegEmissions(t, p.RouteAMode, LegA, postBreaking.MassKg, stillageA)

	onward := 0.0
	if params.ModelOnwardTransport {
		onward = openLoopOnwardKgCO2(t, postBreaking.MassKg*CulletGlasswoolShare, params.GlasswoolPlant) +
			openLoopOnwardKgCO2(t, postBreaking.MassKg*CulletContainerShare, params.ContainerPlant)
	}

	byStage := NewStageBreakdown()
	byStage.Add(StageDismantling, dismantling)
	byStage.Add(StageBreaking, breaking)
	byStage.Add(StageTransportA, legA.KgCO2)
	byStage.Add(StageOpenLoopTransport, onward)

	usefulShare := CulletGlasswoolShare + CulletContainerShare
	finalFlow := ApplyYieldLoss(postBreaking, 1.0-usefulShare)

	result := ScenarioResult{
		ScenarioName:  ScenarioOpenLoop,
		TotalKgCO2:    byStage.Total(),
		ByStage:       byStage,
		InitialIGUs:   start.IGUs,
		FinalIGUs:     finalFlow.IGUs,
		InitialAreaM2: start.AreaM2,
		FinalAreaM2:   finalFlow.AreaM2,
		InitialMassKg: start.MassKg,
		FinalMassKg:   finalFlow.MassKg,
		YieldPercent:  usefulShare * 100.0,
	}

	log.Info().
		Str("component", "engine").
		Str("scenario", ScenarioOpenLoop).
		Float64("total_kgco2", result.TotalKgCO2).
		Msg("scenario complete")

	return result
}

// openLoopOnwardKgCO2 is one simplified downstream cullet leg: processor →
// plant, truck only, no backhaul, fallback distance when the plant
// coincides with the processor.
func openLoopOnwardKgCO2(t TransportConfig, streamMassKg float64, plant Location) float64 {
	sub := t
	sub.Origin = t.Processor
	sub.Reuse = plant
	sub.TruckBOverrideKm = nil
	sub.FerryBOverrideKm = nil

	d := ComputeRouteDistances(sub)
	return (streamMassKg / 1000.0) * d.TruckBKm * t.TruckFactor
}
