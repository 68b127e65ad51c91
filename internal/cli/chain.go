package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/report"
)

func newChainCmd() *cobra.Command {
	var level string
	var path string
	var repurposeF float64

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Project-level full-chain emission breakdown",
		Long: "Chain computes the donor-building → processor → second-site breakdown\n" +
			"in one pass: dismantling, packaging, both transport legs, disassembly,\n" +
			"remanufacturing and quality control.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChain(cmd, level, path, repurposeF)
		},
	}

	cmd.Flags().StringVar(&level, "level", string(engine.LevelSystem),
		"process level: component or system")
	cmd.Flags().StringVar(&path, "path", string(engine.PathReuse),
		"system path: reuse or repurpose")
	cmd.Flags().Float64Var(&repurposeF, "repurpose-factor", engine.RepurposeMediumKgCO2PerM2,
		"repurpose path intensity, kgCO2e/m²")
	cmd.Flags().String("truck-preset", "", "truck emission preset: eu_legacy, eu_current, best_diesel, ze_truck")
	cmd.Flags().String("breakage-preset", "", "handling breakage preset: very_low, low, medium, high")

	return cmd
}

func runChain(cmd *cobra.Command, level, path string, repurposeF float64) error {
	switch engine.ProcessLevel(level) {
	case engine.LevelComponent, engine.LevelSystem:
	default:
		return fmt.Errorf("invalid --level %q: expected component or system", level)
	}
	switch engine.SystemPath(path) {
	case engine.PathReuse, engine.PathRepurpose:
	default:
		return fmt.Errorf("invalid --path %q: expected reuse or repurpose", path)
	}

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

	processes.ProcessLevel = engine.ProcessLevel(level)
	processes.SystemPath = engine.SystemPath(path)
	processes.RepurposeKgCO2PerM2 = repurposeF

	breakdown, err := engine.ComputeFullChainEmissions(engine.BatchInput{
		Transport: transport,
		Processes: processes,
		Groups:    bc.cfg.Groups,
	})
	if err != nil {
		return fmt.Errorf("computing full chain: %w", err)
	}

	jsonOut, opts := outputOptions(cmd)
	out := cmd.OutOrStdout()

	if jsonOut {
		return report.WriteJSON(out, "full_chain", breakdown)
	}
	return report.RenderFullChain(out, breakdown, opts)
}
