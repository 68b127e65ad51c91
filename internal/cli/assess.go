package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/report"
)

// Scenario argument names accepted by `vitrify assess`.
const (
	argSystemReuse    = "system-reuse"
	argComponentReuse = "component-reuse"
	argRepurpose      = "repurpose"
	argClosedLoop     = "closed-loop"
	argOpenLoop       = "open-loop"
)

// assessFlags holds the per-scenario knobs for a single run.
type assessFlags struct {
	destination     string
	removalLoss     float64
	repair          bool
	recondition     bool
	reconditionF    float64
	assemblyF       float64
	preset          string
	sendIntact      bool
	breakingLoss    float64
	breakingF       float64
	onwardTransport bool
	glasswoolPlant  string
	containerPlant  string
	interactive     bool
}

func newAssessCmd() *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "assess <scenario>",
		Short: "Run one recovery scenario against the configured batch",
		Long: "Assess runs a single recovery scenario (system-reuse, component-reuse,\n" +
			"repurpose, closed-loop or open-loop) for the batch described in the\n" +
			"configuration file and prints the per-stage emission breakdown.\n" +
			"On a terminal, parameters not given as flags are asked for.",
		Args: cobra.MaximumNArgs(1),
		ValidArgs: []string{
			argSystemReuse, argComponentReuse, argRepurpose, argClosedLoop, argOpenLoop,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := ""
			if len(args) == 1 {
				scenario = args[0]
			}
			return runAssess(cmd, scenario, flags)
		},
	}

	cmd.Flags().StringVar(&flags.destination, "destination", "",
		`second site: reuse building or float plant ("lat,lon" or place name)`)
	cmd.Flags().Float64Var(&flags.removalLoss, "removal-loss", 0,
		"fraction of units lost during removal, 0..1")
	cmd.Flags().BoolVar(&flags.repair, "repair", false,
		"system reuse: apply the fixed repair loss")
	cmd.Flags().BoolVar(&flags.recondition, "recondition", false,
		"component reuse: recondition recovered panes")
	cmd.Flags().Float64Var(&flags.reconditionF, "recondition-factor", 0.5,
		"component reuse: reconditioning intensity, kgCO2e/m²")
	cmd.Flags().Float64Var(&flags.assemblyF, "assembly-factor", 0.25,
		"component reuse: reassembly intensity, kgCO2e/m²")
	cmd.Flags().StringVar(&flags.preset, "preset", string(engine.RepurposeMedium),
		"repurpose intensity preset: light, medium or heavy")
	cmd.Flags().BoolVar(&flags.sendIntact, "send-intact", false,
		"recycling: ship intact units instead of breaking on site")
	cmd.Flags().Float64Var(&flags.breakingLoss, "breaking-loss", 0.01,
		"recycling: cullet loss fraction during on-site breaking")
	cmd.Flags().Float64Var(&flags.breakingF, "breaking-factor", 0.05,
		"recycling: on-site breaking intensity, kgCO2e/m²")
	cmd.Flags().BoolVar(&flags.onwardTransport, "onward-transport", false,
		"open loop: model the cullet legs to the downstream plants")
	cmd.Flags().StringVar(&flags.glasswoolPlant, "glasswool-plant", "",
		"open loop: glasswool plant location")
	cmd.Flags().StringVar(&flags.containerPlant, "container-plant", "",
		"open loop: container glass plant location")
	cmd.Flags().String("truck-preset", "", "truck emission preset: eu_legacy, eu_current, best_diesel, ze_truck")
	cmd.Flags().String("breakage-preset", "", "handling breakage preset: very_low, low, medium, high")
	cmd.Flags().BoolVar(&flags.interactive, "interactive", false,
		"prompt for scenario parameters not given as flags")

	return cmd
}

func runAssess(cmd *cobra.Command, scenario string, flags assessFlags) error {
	ctx := cmd.Context()

	bc, err := prepareBatch(cmd)
	if err != nil {
		return err
	}

	transport, err := applyTransportPresets(cmd, bc.cfg.Transport)
	if err != nil {
		return err
	}
	processes, err := applyProcessPresets(cmd, bc.cfg.Processes)
	if err != nil {
		return err
	}

	if promptingEnabled(cmd) {
		scenario, err = collectScenarioInput(cmd, scenario, &flags, transport)
		if err != nil {
			return err
		}
	} else if scenario == "" {
		return fmt.Errorf("missing scenario argument: expected one of %s, %s, %s, %s, %s",
			argSystemReuse, argComponentReuse, argRepurpose, argClosedLoop, argOpenLoop)
	}

	dest, err := resolveFlagLocation(ctx, flags.destination, transport.Processor)
	if err != nil {
		return err
	}

	var res engine.ScenarioResult
	switch scenario {
	case argSystemReuse:
		start := engine.FlowFromAcceptable(bc.stats, bc.masses)
		res = engine.RunSystemReuse(ctx, processes, transport, bc.group, start, bc.stats,
			engine.SystemReuseParams{
				RemovalLossFraction: flags.removalLoss,
				RepairRequired:      flags.repair,
				Destination:         dest,
			})

	case argComponentReuse:
		start := engine.FlowFromAcceptable(bc.stats, bc.masses)
		res = engine.RunComponentReuse(ctx, processes, transport, bc.group, start, bc.stats,
			engine.ComponentReuseParams{
				RemovalLossFraction:   flags.removalLoss,
				ReconditionRequired:   flags.recondition,
				ReconditionKgCO2PerM2: flags.reconditionF,
				AssemblyKgCO2PerM2:    flags.assemblyF,
				Destination:           dest,
			})

	case argRepurpose:
		start := engine.FlowFromAcceptable(bc.stats, bc.masses)
		res = engine.RunRepurpose(ctx, processes, transport, bc.group, start, bc.stats,
			engine.RepurposeParams{
				RemovalLossFraction: flags.removalLoss,
				Preset:              engine.RepurposePreset(flags.preset),
				Destination:         dest,
			})

	case argClosedLoop:
		start := engine.FlowFromTotals(bc.stats, bc.masses)
		res = engine.RunClosedLoopRecycling(ctx, processes, transport, bc.group, start,
			engine.ClosedLoopParams{
				SendIntact:           flags.sendIntact,
				RemovalLossFraction:  flags.removalLoss,
				BreakingLossFraction: flags.breakingLoss,
				BreakingKgCO2PerM2:   flags.breakingF,
				FloatPlant:           dest,
			})

	case argOpenLoop:
		glasswool, err := resolveFlagLocation(ctx, flags.glasswoolPlant, transport.Processor)
		if err != nil {
			return err
		}
		container, err := resolveFlagLocation(ctx, flags.containerPlant, transport.Processor)
		if err != nil {
			return err
		}
		start := engine.FlowFromTotals(bc.stats, bc.masses)
		res = engine.RunOpenLoopRecycling(ctx, processes, transport, bc.group, start,
			engine.OpenLoopParams{
				SendIntact:           flags.sendIntact,
				RemovalLossFraction:  flags.removalLoss,
				BreakingLossFraction: flags.breakingLoss,
				BreakingKgCO2PerM2:   flags.breakingF,
				ModelOnwardTransport: flags.onwardTransport,
				GlasswoolPlant:       glasswool,
				ContainerPlant:       container,
			})

	default:
		return fmt.Errorf("unknown scenario %q: expected one of %s, %s, %s, %s, %s",
			scenario, argSystemReuse, argComponentReuse, argRepurpose, argClosedLoop, argOpenLoop)
	}

	jsonOut, opts := outputOptions(cmd)
	out := cmd.OutOrStdout()

	if jsonOut {
		return report.WriteJSON(out, "scenario", res)
	}
	if err := report.RenderBatchOverview(out, bc.stats, bc.masses, opts); err != nil {
		return err
	}
	if err := report.RenderGeometryOverview(out, bc.cfg.Groups, bc.cfg.Seal, opts); err != nil {
		return err
	}
	return report.RenderScenario(out, res, opts)
}
