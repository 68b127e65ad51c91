package engine

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/SimosManiatis/vitrify/internal/logging"
)

// ComparisonInput bundles everything needed to run every scenario against
// the same initial batch.
type ComparisonInput struct {
	Processes ProcessSettings
	Transport TransportConfig
	Group     IGUGroup
	Stats     BatchStats
	Masses    MassTotals

	SystemReuse    SystemReuseParams
	ComponentReuse ComponentReuseParams
	Repurpose      RepurposeParams
	ClosedLoop     ClosedLoopParams
	OpenLoop       OpenLoopParams
}

// Comparison is the ordered outcome of running all five scenarios.
type Comparison struct {
	// RunID tags the comparison for reporting.
	RunID   string           `json:"run_id"`
	Results []ScenarioResult `json:"results"`
}

// CompareScenarios runs all five recovery scenarios against the same
// initial batch and returns their results in canonical order (system
// reuse, component reuse, repurpose, closed loop, open loop).
//
// Each scenario receives its own copy of the transport config, so the
// destination chosen by one scenario never leaks into the next. Reuse and
// repurpose scenarios start from the acceptable portion of the batch;
// recycling scenarios start from the whole batch.
func CompareScenarios(ctx context.Context, in ComparisonInput) Comparison {
	log := logging.FromContext(ctx)

	runID := ulid.Make().String()
	log.Info().
		Str("component", "engine").
		Str("operation", "compare").
		Str("run_id", runID).
		Msg("running scenario comparison")

	acceptable := FlowFromAcceptable(in.Stats, in.Masses)
	totals := FlowFromTotals(in.Stats, in.Masses)

	// TransportConfig is a value type: each call already operates on its
	// own copy, which is the isolation the comparison needs.
	results := []ScenarioResult{
		RunSystemReuse(ctx, in.Processes, in.Transport, in.Group, acceptable, in.Stats, in.SystemReuse),
		RunComponentReuse(ctx, in.Processes, in.Transport, in.Group, acceptable, in.Stats, in.ComponentReuse),
		RunRepurpose(ctx, in.Processes, in.Transport, in.Group, acceptable, in.Stats, in.Repurpose),
		RunClosedLoopRecycling(ctx, in.Processes, in.Transport, in.Group, totals, in.ClosedLoop),
		RunOpenLoopRecycling(ctx, in.Processes, in.Transport, in.Group, totals, in.OpenLoop),
	}

	return Comparison{RunID: runID, Results: results}
}
