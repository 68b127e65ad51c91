// Package report renders assessment results: per-scenario stage tables, the
// full-chain breakdown and the five-way comparison, in styled, plain and
// JSON form.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/equiv"
)

const (
	boxWidth     = 64
	titlePadding = 4
	stageColumn  = 34
	valueColumn  = 14
)

// Options controls rendering. Styled output is only used when the writer is
// a terminal; the caller decides that (see cli).
type Options struct {
	Styled bool
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(boxWidth)
}

func bestStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
}

// printer formats numbers with thousands separators.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// RenderScenario writes one scenario result: the ordered stage table, the
// total and the flow summary.
func RenderScenario(w io.Writer, res engine.ScenarioResult, opts Options) error {
	p := printer()
	var b strings.Builder

	writeStageTable(&b, p, res)

	if opts.Styled {
		var boxed strings.Builder
		boxed.WriteString(titleStyle().Render(strings.ToUpper(res.ScenarioName)))
		boxed.WriteString("\n")
		boxed.WriteString(strings.Repeat("═", boxWidth-titlePadding))
		boxed.WriteString("\n")
		boxed.WriteString(b.String())
		_, err := fmt.Fprintln(w, borderStyle().Render(boxed.String()))
		return err
	}

	if _, err := fmt.Fprintln(w, strings.ToUpper(res.ScenarioName)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", len(res.ScenarioName))); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

func writeStageTable(b *strings.Builder, p *message.Printer, res engine.ScenarioResult) {
	for _, e := range res.ByStage.Entries() {
		b.WriteString(p.Sprintf("%-34s %14.3f kgCO2e\n", e.Stage, e.KgCO2e))
	}
	b.WriteString(strings.Repeat("─", stageColumn+valueColumn+8))
	b.WriteString("\n")
	b.WriteString(p.Sprintf("%-34s %14.3f kgCO2e\n", "Total", res.TotalKgCO2))
	if res.FinalAreaM2 > 0 {
		b.WriteString(p.Sprintf("%-34s %14.3f kgCO2e/m²\n",
			"Intensity", engine.Round3(res.TotalKgCO2/res.FinalAreaM2)))
	}
	b.WriteString("\n")
	b.WriteString(p.Sprintf("Flow: %.1f → %.1f IGUs, %.2f → %.2f m², %.1f → %.1f kg (yield %.1f%%)\n",
		res.InitialIGUs, res.FinalIGUs,
		res.InitialAreaM2, res.FinalAreaM2,
		res.InitialMassKg, res.FinalMassKg,
		res.YieldPercent))
	if eq, err := equiv.ForEmissions(res.TotalKgCO2); err == nil && !eq.IsEmpty {
		b.WriteString(eq.DisplayText)
		b.WriteString("\n")
	}
}

// RenderComparison writes the five-way comparison ranked by total emissions,
// marking the lowest-emission scenario.
func RenderComparison(w io.Writer, cmp engine.Comparison, opts Options) error {
	p := printer()

	ranked := make([]engine.ScenarioResult, len(cmp.Results))
	copy(ranked, cmp.Results)
	for i := range ranked {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].TotalKgCO2 < ranked[i].TotalKgCO2 {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	var b strings.Builder
	b.WriteString(p.Sprintf("%-4s %-28s %14s %10s\n", "#", "Scenario", "kgCO2e", "Yield"))
	for i, res := range ranked {
		line := p.Sprintf("%-4d %-28s %14.3f %9.1f%%", i+1, res.ScenarioName, res.TotalKgCO2, res.YieldPercent)
		if i == 0 && opts.Styled {
			line = bestStyle().Render(line + "  ◀ lowest")
		} else if i == 0 {
			line += "  <- lowest"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\nRun ID: %s\n", cmp.RunID))

	if opts.Styled {
		var boxed strings.Builder
		boxed.WriteString(titleStyle().Render("SCENARIO COMPARISON"))
		boxed.WriteString("\n")
		boxed.WriteString(strings.Repeat("═", boxWidth-titlePadding))
		boxed.WriteString("\n")
		boxed.WriteString(b.String())
		_, err := fmt.Fprintln(w, borderStyle().Render(boxed.String()))
		return err
	}

	if _, err := fmt.Fprintln(w, "SCENARIO COMPARISON"); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

// RenderFullChain writes the project-level breakdown in chain order.
func RenderFullChain(w io.Writer, br engine.EmissionBreakdown, opts Options) error {
	p := printer()

	rows := []struct {
		label string
		value float64
	}{
		{"Dismantling", br.DismantlingKgCO2},
		{"Packaging", br.PackagingKgCO2},
		{"Transport A", br.TransportAKgCO2},
		{"Disassembly", br.DisassemblyKgCO2},
		{"Remanufacturing", br.RemanufacturingKgCO2},
		{"Quality control", br.QualityControlKgCO2},
		{"Transport B", br.TransportBKgCO2},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(p.Sprintf("%-34s %14.3f kgCO2e\n", row.label, row.value))
	}
	b.WriteString(strings.Repeat("─", stageColumn+valueColumn+8))
	b.WriteString("\n")
	b.WriteString(p.Sprintf("%-34s %14.3f kgCO2e\n", "Total", br.TotalKgCO2))

	if ta, ok := br.Extra["total_area_m2"]; ok && ta > 0 {
		b.WriteString(p.Sprintf("%-34s %14.3f kgCO2e/m²\n", "Intensity", engine.Round3(br.TotalKgCO2/ta)))
	}
	if eq, err := equiv.ForEmissions(br.TotalKgCO2); err == nil && !eq.IsEmpty {
		b.WriteString(eq.DisplayText)
		b.WriteString("\n")
	}

	if opts.Styled {
		var boxed strings.Builder
		boxed.WriteString(titleStyle().Render("FULL CHAIN BREAKDOWN"))
		boxed.WriteString("\n")
		boxed.WriteString(strings.Repeat("═", boxWidth-titlePadding))
		boxed.WriteString("\n")
		boxed.WriteString(b.String())
		_, err := fmt.Fprintln(w, borderStyle().Render(boxed.String()))
		return err
	}

	if _, err := fmt.Fprintln(w, "FULL CHAIN BREAKDOWN"); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

// RenderBatchOverview writes the aggregation figures that precede any
// scenario output.
func RenderBatchOverview(w io.Writer, stats engine.BatchStats, masses engine.MassTotals, opts Options) error {
	p := printer()

	var b strings.Builder
	b.WriteString(p.Sprintf("Total units          %10.0f  (%.2f m², %.1f kg)\n",
		stats.TotalIGUs, stats.TotalAreaM2, masses.TotalMassKg))
	b.WriteString(p.Sprintf("Acceptable for reuse %10.0f  (%.2f m², %.1f kg)\n",
		stats.AcceptableIGUs, stats.AcceptableAreaM2, masses.AcceptableMassKg))
	b.WriteString(p.Sprintf("Remanufacturable     %10.2f  (%.2f m², %.1f kg)\n",
		stats.RemanufacturedIGUs, stats.RemanufacturedAreaM2, masses.RemanufacturedMassKg))
	b.WriteString(p.Sprintf("Average per unit     %10.2f m², %.1f kg\n",
		stats.AverageAreaPerIGU, masses.AvgMassPerIGUKg))

	if opts.Styled {
		var boxed strings.Builder
		boxed.WriteString(titleStyle().Render("BATCH OVERVIEW"))
		boxed.WriteString("\n")
		boxed.WriteString(strings.Repeat("═", boxWidth-titlePadding))
		boxed.WriteString("\n")
		boxed.WriteString(b.String())
		_, err := fmt.Fprintln(w, borderStyle().Render(boxed.String()))
		return err
	}

	if _, err := fmt.Fprintln(w, "BATCH OVERVIEW"); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

// RenderGeometryOverview writes the per-group geometry figures: unit area,
// surface mass and the sealant volumes derived from the seal geometry.
func RenderGeometryOverview(w io.Writer, groups []engine.IGUGroup, seal engine.SealGeometry, opts Options) error {
	p := printer()

	var b strings.Builder
	for i, g := range groups {
		area := engine.AreaPerUnitM2(g)
		massPerM2, err := engine.MassPerM2(g)
		if err != nil {
			return err
		}
		vols, err := engine.ComputeSealantVolumes(g, seal)
		if err != nil {
			return err
		}

		b.WriteString(p.Sprintf("Group %d: %d × %s, %.0f × %.0f mm\n",
			i+1, g.Quantity, g.Glazing, g.UnitWidthMM, g.UnitHeightMM))
		b.WriteString(p.Sprintf("  Area %.2f m²/unit, mass %.1f kg/unit (%.1f kg/m²)\n",
			area, area*massPerM2, massPerM2))
		b.WriteString(p.Sprintf("  Primary seal   %.6f m³/unit, %.4f m³ batch\n",
			vols.PrimaryPerIGUM3, vols.PrimaryTotalM3))
		b.WriteString(p.Sprintf("  Secondary seal %.1f mm thick, %.6f m³/unit, %.4f m³ batch\n",
			vols.SecondaryThicknessMM, vols.SecondaryPerIGUM3, vols.SecondaryTotalM3))
	}

	if opts.Styled {
		var boxed strings.Builder
		boxed.WriteString(titleStyle().Render("IGU GEOMETRY"))
		boxed.WriteString("\n")
		boxed.WriteString(strings.Repeat("═", boxWidth-titlePadding))
		boxed.WriteString("\n")
		boxed.WriteString(b.String())
		_, err := fmt.Fprintln(w, borderStyle().Render(boxed.String()))
		return err
	}

	if _, err := fmt.Fprintln(w, "IGU GEOMETRY"); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

// jsonEnvelope is the machine-readable output wrapper.
type jsonEnvelope struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// WriteJSON writes any result type as an indented JSON envelope.
func WriteJSON(w io.Writer, kind string, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonEnvelope{Kind: kind, Payload: payload}); err != nil {
		return fmt.Errorf("encoding %s output: %w", kind, err)
	}
	return nil
}
