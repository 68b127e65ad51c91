package cli

import (
	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/report"
	"github.com/SimosManiatis/vitrify/internal/tui"
)

func newCompareCmd() *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run all five recovery scenarios and rank them",
		Long: "Compare runs system reuse, component reuse, repurposing and both\n" +
			"recycling loops on the same batch, then ranks them by total kgCO2e.\n" +
			"Each scenario gets an isolated copy of the transport network.\n" +
			"On a terminal, parameters not given as flags are asked for.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.destination, "destination", "",
		`second site for the reuse and repurpose paths ("lat,lon" or place name)`)
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
		"prompt for unset parameters and browse the result in a TUI (requires a terminal)")

	return cmd
}

func runCompare(cmd *cobra.Command, flags assessFlags) error {
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
		if err := collectComparisonInput(cmd, &flags, transport); err != nil {
			return err
		}
	}

	dest, err := resolveFlagLocation(ctx, flags.destination, transport.Processor)
	if err != nil {
		return err
	}
	glasswool, err := resolveFlagLocation(ctx, flags.glasswoolPlant, transport.Processor)
	if err != nil {
		return err
	}
	container, err := resolveFlagLocation(ctx, flags.containerPlant, transport.Processor)
	if err != nil {
		return err
	}

	input := engine.ComparisonInput{
		Processes: processes,
		Transport: transport,
		Group:     bc.group,
		Stats:     bc.stats,
		Masses:    bc.masses,
		SystemReuse: engine.SystemReuseParams{
			RemovalLossFraction: flags.removalLoss,
			RepairRequired:      flags.repair,
			Destination:         dest,
		},
		ComponentReuse: engine.ComponentReuseParams{
			RemovalLossFraction:   flags.removalLoss,
			ReconditionRequired:   flags.recondition,
			ReconditionKgCO2PerM2: flags.reconditionF,
			AssemblyKgCO2PerM2:    flags.assemblyF,
			Destination:           dest,
		},
		Repurpose: engine.RepurposeParams{
			RemovalLossFraction: flags.removalLoss,
			Preset:              engine.RepurposePreset(flags.preset),
			Destination:         dest,
		},
		ClosedLoop: engine.ClosedLoopParams{
			SendIntact:           flags.sendIntact,
			RemovalLossFraction:  flags.removalLoss,
			BreakingLossFraction: flags.breakingLoss,
			BreakingKgCO2PerM2:   flags.breakingF,
			FloatPlant:           dest,
		},
		OpenLoop: engine.OpenLoopParams{
			SendIntact:           flags.sendIntact,
			RemovalLossFraction:  flags.removalLoss,
			BreakingLossFraction: flags.breakingLoss,
			BreakingKgCO2PerM2:   flags.breakingF,
			ModelOnwardTransport: flags.onwardTransport,
			GlasswoolPlant:       glasswool,
			ContainerPlant:       container,
		},
	}

	cmp := engine.CompareScenarios(ctx, input)

	jsonOut, opts := outputOptions(cmd)
	out := cmd.OutOrStdout()

	if jsonOut {
		return report.WriteJSON(out, "comparison", cmp)
	}

	if flags.interactive && isWriterTerminal(cmd) {
		return tui.Run(cmp)
	}

	if err := report.RenderBatchOverview(out, bc.stats, bc.masses, opts); err != nil {
		return err
	}
	if err := report.RenderGeometryOverview(out, bc.cfg.Groups, bc.cfg.Seal, opts); err != nil {
		return err
	}
	if err := report.RenderComparison(out, cmp, opts); err != nil {
		return err
	}
	for _, res := range cmp.Results {
		if err := report.RenderScenario(out, res, opts); err != nil {
			return err
		}
	}
	return nil
}
