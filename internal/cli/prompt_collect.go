package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/engine"
)

// promptingEnabled reports whether missing scenario parameters should be
// collected interactively. --interactive forces the answer either way;
// without the flag, prompting happens only when stdin is a real terminal,
// so piped and scripted runs stay non-interactive.
func promptingEnabled(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("interactive") {
		v, _ := cmd.Flags().GetBool("interactive")
		return v
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// formatLocation renders a location in the "lat,lon" literal form accepted
// by every resolver, so prompted answers travel the same path as flag values.
func formatLocation(loc engine.Location) string {
	return fmt.Sprintf("%.6f,%.6f", loc.Lat, loc.Lon)
}

// promptFloat asks for a numeric flag value unless it was set explicitly.
func promptFloat(cmd *cobra.Command, p *Prompter, flag, question string, v *float64) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	val, err := p.Float(question, *v)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// promptYesNo asks for a boolean flag value unless it was set explicitly.
func promptYesNo(cmd *cobra.Command, p *Prompter, flag, question string, v *bool) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	val, err := p.YesNo(question, *v)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// promptLocation asks for a location flag unless it was set explicitly.
func promptLocation(cmd *cobra.Command, p *Prompter, flag, question string, def engine.Location, v *string) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}
	loc, err := p.Location(cmd.Context(), question, locationResolver, def)
	if err != nil {
		return err
	}
	*v = formatLocation(loc)
	return nil
}

// promptRepurposePreset asks for the repurposing intensity preset.
func promptRepurposePreset(cmd *cobra.Command, p *Prompter, flags *assessFlags) error {
	if cmd.Flags().Changed("preset") {
		return nil
	}
	preset, err := p.Choice("Repurposing process intensity:", []string{
		string(engine.RepurposeLight), string(engine.RepurposeMedium), string(engine.RepurposeHeavy),
	}, 1)
	if err != nil {
		return err
	}
	flags.preset = preset
	return nil
}

// collectScenarioInput fills in the knobs the user did not pass as flags by
// prompting on the command's input stream. The prompt defaults mirror the
// flag defaults, so answering nothing runs the same assessment as passing no
// flags. An empty scenario is asked for first.
func collectScenarioInput(cmd *cobra.Command, scenario string, flags *assessFlags, t engine.TransportConfig) (string, error) {
	p := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	if scenario == "" {
		choice, err := p.Choice("Select a recovery scenario:", []string{
			argSystemReuse, argComponentReuse, argRepurpose, argClosedLoop, argOpenLoop,
		}, 0)
		if err != nil {
			return "", err
		}
		scenario = choice
	}

	if err := promptFloat(cmd, p, "removal-loss", "Fraction of units lost during removal (0..1)", &flags.removalLoss); err != nil {
		return "", err
	}

	switch scenario {
	case argSystemReuse:
		if err := promptLocation(cmd, p, "destination", "Reuse building location", t.Processor, &flags.destination); err != nil {
			return "", err
		}
		if err := promptYesNo(cmd, p, "repair", "Repair the recovered units before reinstallation?", &flags.repair); err != nil {
			return "", err
		}

	case argComponentReuse:
		if err := promptLocation(cmd, p, "destination", "Reassembly site location", t.Processor, &flags.destination); err != nil {
			return "", err
		}
		if err := promptYesNo(cmd, p, "recondition", "Recondition the recovered panes?", &flags.recondition); err != nil {
			return "", err
		}
		if flags.recondition {
			if err := promptFloat(cmd, p, "recondition-factor", "Reconditioning intensity (kgCO2e/m²)", &flags.reconditionF); err != nil {
				return "", err
			}
		}
		if err := promptFloat(cmd, p, "assembly-factor", "Reassembly intensity (kgCO2e/m²)", &flags.assemblyF); err != nil {
			return "", err
		}

	case argRepurpose:
		if err := promptLocation(cmd, p, "destination", "Repurposing site location", t.Processor, &flags.destination); err != nil {
			return "", err
		}
		if err := promptRepurposePreset(cmd, p, flags); err != nil {
			return "", err
		}

	case argClosedLoop:
		if err := promptLocation(cmd, p, "destination", "Float plant location", t.Processor, &flags.destination); err != nil {
			return "", err
		}
		if err := collectBreakingInput(cmd, p, flags); err != nil {
			return "", err
		}

	case argOpenLoop:
		if err := collectBreakingInput(cmd, p, flags); err != nil {
			return "", err
		}
		if err := promptYesNo(cmd, p, "onward-transport", "Model the cullet legs to the downstream plants?", &flags.onwardTransport); err != nil {
			return "", err
		}
		if flags.onwardTransport {
			if err := promptLocation(cmd, p, "glasswool-plant", "Glasswool plant location", t.Processor, &flags.glasswoolPlant); err != nil {
				return "", err
			}
			if err := promptLocation(cmd, p, "container-plant", "Container glass plant location", t.Processor, &flags.containerPlant); err != nil {
				return "", err
			}
		}
	}

	return scenario, nil
}

// collectBreakingInput asks the recycling handling questions. Breaking
// details are skipped when the units ship intact.
func collectBreakingInput(cmd *cobra.Command, p *Prompter, flags *assessFlags) error {
	if err := promptYesNo(cmd, p, "send-intact", "Ship the units intact instead of breaking on site?", &flags.sendIntact); err != nil {
		return err
	}
	if flags.sendIntact {
		return nil
	}
	if err := promptFloat(cmd, p, "breaking-loss", "Cullet loss fraction during breaking (0..1)", &flags.breakingLoss); err != nil {
		return err
	}
	return promptFloat(cmd, p, "breaking-factor", "On-site breaking intensity (kgCO2e/m²)", &flags.breakingF)
}

// collectComparisonInput asks for the knobs shared across a five-way
// comparison, again skipping anything set as a flag.
func collectComparisonInput(cmd *cobra.Command, flags *assessFlags, t engine.TransportConfig) error {
	p := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	if err := promptFloat(cmd, p, "removal-loss", "Fraction of units lost during removal (0..1)", &flags.removalLoss); err != nil {
		return err
	}
	if err := promptLocation(cmd, p, "destination", "Second site for the reuse and repurpose paths", t.Processor, &flags.destination); err != nil {
		return err
	}
	if err := promptYesNo(cmd, p, "repair", "System reuse: repair before reinstallation?", &flags.repair); err != nil {
		return err
	}
	if err := promptYesNo(cmd, p, "recondition", "Component reuse: recondition the recovered panes?", &flags.recondition); err != nil {
		return err
	}
	if flags.recondition {
		if err := promptFloat(cmd, p, "recondition-factor", "Reconditioning intensity (kgCO2e/m²)", &flags.reconditionF); err != nil {
			return err
		}
	}
	if err := promptRepurposePreset(cmd, p, flags); err != nil {
		return err
	}
	if err := collectBreakingInput(cmd, p, flags); err != nil {
		return err
	}
	if err := promptYesNo(cmd, p, "onward-transport", "Open loop: model the downstream cullet legs?", &flags.onwardTransport); err != nil {
		return err
	}
	if flags.onwardTransport {
		if err := promptLocation(cmd, p, "glasswool-plant", "Glasswool plant location", t.Processor, &flags.glasswoolPlant); err != nil {
			return err
		}
		if err := promptLocation(cmd, p, "container-plant", "Container glass plant location", t.Processor, &flags.containerPlant); err != nil {
			return err
		}
	}
	return nil
}
