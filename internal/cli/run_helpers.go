package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/config"
	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/geocode"
	"github.com/SimosManiatis/vitrify/internal/report"
)

// locationResolver resolves --destination style flags. Package-level so
// tests can substitute a geocode.StaticResolver.
var locationResolver geocode.Resolver = geocode.NewNominatimResolver()

// batchContext bundles everything a scenario run needs from the config.
type batchContext struct {
	cfg    *config.Config
	group  engine.IGUGroup
	stats  engine.BatchStats
	masses engine.MassTotals
}

// prepareBatch loads the config and aggregates its groups.
func prepareBatch(cmd *cobra.Command) (*batchContext, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if len(cfg.Groups) == 0 {
		return nil, fmt.Errorf("aggregating batch: %w", engine.ErrEmptyBatch)
	}

	stats, err := engine.AggregateGroups(cfg.Groups, cfg.Processes)
	if err != nil {
		return nil, fmt.Errorf("aggregating batch: %w", err)
	}
	masses, err := engine.ComputeMassTotals(cfg.Groups, stats)
	if err != nil {
		return nil, fmt.Errorf("computing batch masses: %w", err)
	}

	return &batchContext{cfg: cfg, group: cfg.Groups[0], stats: stats, masses: masses}, nil
}

// resolveFlagLocation resolves a location flag value, returning def when the
// flag is empty.
func resolveFlagLocation(ctx context.Context, value string, def engine.Location) (engine.Location, error) {
	if value == "" {
		return def, nil
	}
	loc, err := locationResolver.Resolve(ctx, value)
	if err != nil {
		return engine.Location{}, fmt.Errorf("resolving location %q: %w", value, err)
	}
	return loc, nil
}

// applyTransportPresets overlays the truck emission preset flag onto the
// config's transport section.
func applyTransportPresets(cmd *cobra.Command, t engine.TransportConfig) (engine.TransportConfig, error) {
	preset, _ := cmd.Flags().GetString("truck-preset")
	if preset == "" {
		return t, nil
	}
	factor, err := engine.TruckFactorForPreset(preset)
	if err != nil {
		return t, fmt.Errorf("truck preset %q: %w", preset, err)
	}
	return t.WithTruckFactor(factor), nil
}

// applyProcessPresets overlays the breakage preset flag onto the config's
// process settings.
func applyProcessPresets(cmd *cobra.Command, p engine.ProcessSettings) (engine.ProcessSettings, error) {
	preset, _ := cmd.Flags().GetString("breakage-preset")
	if preset == "" {
		return p, nil
	}
	rate, err := engine.BreakageRateForPreset(preset)
	if err != nil {
		return p, fmt.Errorf("breakage preset %q: %w", preset, err)
	}
	p.BreakageRate = rate
	return p, nil
}

// outputOptions derives the report options from the --json flag and whether
// stdout is a terminal.
func outputOptions(cmd *cobra.Command) (jsonOut bool, opts report.Options) {
	jsonOut, _ = cmd.Flags().GetBool("json")
	opts = report.Options{Styled: isWriterTerminal(cmd)}
	return jsonOut, opts
}

// isWriterTerminal reports whether the command writes to a real terminal.
// Commands under test write to buffers, which disables styling.
func isWriterTerminal(cmd *cobra.Command) bool {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return isTerminal(f)
	}
	return false
}
