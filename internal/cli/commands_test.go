package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimosManiatis/vitrify/internal/config"
	"github.com/SimosManiatis/vitrify/internal/engine"
	"github.com/SimosManiatis/vitrify/internal/geocode"
)

// writeTestConfig saves a default config with road-only legs to a temp file.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	cfg := config.Default()
	cfg.Processes.RouteAMode = engine.ModeRoad
	cfg.Processes.RouteBMode = engine.ModeRoad

	path := filepath.Join(t.TempDir(), "vitrify.yaml")
	require.NoError(t, cfg.Save(path))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeInput(t, "", args...)
}

// executeInput runs the root command with the given stdin contents, for
// commands that prompt.
func executeInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func useStaticResolver(t *testing.T) {
	t.Helper()
	orig := locationResolver
	locationResolver = geocode.StaticResolver{
		"amsterdam": {Lat: 52.3676, Lon: 4.9041},
	}
	t.Cleanup(func() { locationResolver = orig })
}

func TestAssessCommand(t *testing.T) {
	useStaticResolver(t)
	cfgPath := writeTestConfig(t)

	t.Run("system reuse", func(t *testing.T) {
		out, err := execute(t, "assess", "system-reuse",
			"--config", cfgPath, "--destination", "52.37,4.90", "--repair")
		require.NoError(t, err)
		assert.Contains(t, out, "BATCH OVERVIEW")
		assert.Contains(t, out, "IGU GEOMETRY")
		assert.Contains(t, out, "SYSTEM REUSE")
		assert.Contains(t, out, engine.StageDismantlingESite)
	})

	t.Run("repurpose preset in name", func(t *testing.T) {
		out, err := execute(t, "assess", "repurpose",
			"--config", cfgPath, "--preset", "heavy", "--destination", "Amsterdam")
		require.NoError(t, err)
		assert.Contains(t, out, "REPURPOSE (HEAVY)")
	})

	t.Run("open loop with onward transport", func(t *testing.T) {
		out, err := execute(t, "assess", "open-loop",
			"--config", cfgPath, "--send-intact", "--onward-transport",
			"--glasswool-plant", "52.0,5.0", "--container-plant", "51.5,3.5")
		require.NoError(t, err)
		assert.Contains(t, out, engine.StageOpenLoopTransport)
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, "assess", "closed-loop",
			"--config", cfgPath, "--json", "--destination", "52.37,4.90")
		require.NoError(t, err)

		var env struct {
			Kind    string                `json:"kind"`
			Payload engine.ScenarioResult `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &env))
		assert.Equal(t, "scenario", env.Kind)
		assert.Equal(t, engine.ScenarioClosedLoop, env.Payload.ScenarioName)
		assert.Equal(t, 80.0, env.Payload.YieldPercent)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := execute(t, "assess", "teleport", "--config", cfgPath)
		require.Error(t, err)
	})

	t.Run("bad truck preset", func(t *testing.T) {
		_, err := execute(t, "assess", "system-reuse",
			"--config", cfgPath, "--truck-preset", "steam_engine")
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrUnknownPreset)
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := execute(t, "assess", "system-reuse",
			"--config", filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "loading configuration")
	})

	t.Run("missing scenario without prompting", func(t *testing.T) {
		_, err := execute(t, "assess", "--config", cfgPath)
		require.Error(t, err)
		assert.ErrorContains(t, err, "missing scenario")
	})
}

func TestAssessInteractive(t *testing.T) {
	useStaticResolver(t)
	cfgPath := writeTestConfig(t)

	t.Run("prompts fill unset parameters", func(t *testing.T) {
		// Scenario 1 (system reuse), 10% removal loss, default destination,
		// repair yes.
		out, err := executeInput(t, "1\n0.1\n\ny\n",
			"assess", "--config", cfgPath, "--interactive")
		require.NoError(t, err)
		assert.Contains(t, out, "Select a recovery scenario")
		assert.Contains(t, out, "SYSTEM REUSE")
		// 100 acceptable units × 0.9 removal survival × 0.8 repair survival.
		assert.Contains(t, out, "72.0 IGUs")
	})

	t.Run("end of input keeps defaults", func(t *testing.T) {
		out, err := executeInput(t, "",
			"assess", "system-reuse", "--config", cfgPath, "--interactive")
		require.NoError(t, err)
		assert.Contains(t, out, "SYSTEM REUSE")
		assert.Contains(t, out, "yield 100.0%")
	})

	t.Run("flags are not asked again", func(t *testing.T) {
		// Only the repair question is left to answer.
		out, err := executeInput(t, "y\n",
			"assess", "system-reuse", "--config", cfgPath, "--interactive",
			"--removal-loss", "0.1", "--destination", "52.37,4.90")
		require.NoError(t, err)
		assert.NotContains(t, out, "Fraction of units lost")
		assert.Contains(t, out, "72.0 IGUs")
	})

	t.Run("invalid numeric answer fails", func(t *testing.T) {
		_, err := executeInput(t, "not-a-number\n",
			"assess", "system-reuse", "--config", cfgPath, "--interactive")
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid number")
	})

	t.Run("prompted place name goes through the resolver", func(t *testing.T) {
		out, err := executeInput(t, "0\namsterdam\n\n",
			"assess", "system-reuse", "--config", cfgPath, "--interactive")
		require.NoError(t, err)
		assert.Contains(t, out, "SYSTEM REUSE")
	})
}

func TestCompareCommand(t *testing.T) {
	useStaticResolver(t)
	cfgPath := writeTestConfig(t)

	t.Run("plain output lists all five scenarios", func(t *testing.T) {
		out, err := execute(t, "compare", "--config", cfgPath, "--destination", "Amsterdam")
		require.NoError(t, err)
		assert.Contains(t, out, "IGU GEOMETRY")
		assert.Contains(t, out, "SCENARIO COMPARISON")
		assert.Contains(t, out, engine.ScenarioSystemReuse)
		assert.Contains(t, out, engine.ScenarioComponentReuse)
		assert.Contains(t, out, "Repurpose (medium)")
		assert.Contains(t, out, engine.ScenarioClosedLoop)
		assert.Contains(t, out, engine.ScenarioOpenLoop)
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, "compare", "--config", cfgPath, "--json")
		require.NoError(t, err)

		var env struct {
			Kind    string            `json:"kind"`
			Payload engine.Comparison `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &env))
		assert.Equal(t, "comparison", env.Kind)
		assert.Len(t, env.Payload.Results, 5)
		assert.NotEmpty(t, env.Payload.RunID)
	})

	t.Run("unresolvable destination", func(t *testing.T) {
		_, err := execute(t, "compare", "--config", cfgPath, "--destination", "Atlantis")
		require.Error(t, err)
		assert.ErrorIs(t, err, geocode.ErrNotFound)
	})

	t.Run("interactive prompts collect shared knobs", func(t *testing.T) {
		// 10% removal loss, default destination, repair yes; end of input
		// keeps the defaults for everything else. The buffer writer is not a
		// terminal, so the run falls back to the plain comparison tables.
		out, err := executeInput(t, "0.1\n\ny\n",
			"compare", "--config", cfgPath, "--interactive")
		require.NoError(t, err)
		assert.Contains(t, out, "Fraction of units lost")
		assert.Contains(t, out, "SCENARIO COMPARISON")
		// System reuse ends at 0.9 × 0.8 of the acceptable area.
		assert.Contains(t, out, "72.0")
	})
}

func TestChainCommand(t *testing.T) {
	cfgPath := writeTestConfig(t)

	t.Run("system reuse chain", func(t *testing.T) {
		out, err := execute(t, "chain", "--config", cfgPath, "--level", "system")
		require.NoError(t, err)
		assert.Contains(t, out, "FULL CHAIN BREAKDOWN")
		assert.Contains(t, out, "Disassembly")
		assert.Contains(t, out, "Intensity")
	})

	t.Run("component json", func(t *testing.T) {
		out, err := execute(t, "chain", "--config", cfgPath, "--level", "component", "--json")
		require.NoError(t, err)

		var env struct {
			Kind    string                   `json:"kind"`
			Payload engine.EmissionBreakdown `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &env))
		assert.Equal(t, "full_chain", env.Kind)
		assert.Greater(t, env.Payload.RemanufacturingKgCO2, 0.0)
		assert.Zero(t, env.Payload.DisassemblyKgCO2)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := execute(t, "chain", "--config", cfgPath, "--level", "molecule")
		assert.ErrorContains(t, err, "invalid --level")
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := execute(t, "chain", "--config", cfgPath, "--path", "landfill")
		assert.ErrorContains(t, err, "invalid --path")
	})
}

func TestConfigCommands(t *testing.T) {
	t.Run("init then validate", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vitrify.yaml")

		out, err := execute(t, "config", "init", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote")

		out, err = execute(t, "config", "validate", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
	})

	t.Run("init refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vitrify.yaml")
		_, err := execute(t, "config", "init", "--config", path)
		require.NoError(t, err)

		_, err = execute(t, "config", "init", "--config", path)
		assert.ErrorContains(t, err, "already exists")

		_, err = execute(t, "config", "init", "--config", path, "--force")
		assert.NoError(t, err)
	})

	t.Run("validate rejects bad schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vitrify.yaml")
		cfg := config.Default()
		cfg.SchemaVersion = "9.0.0"
		require.NoError(t, cfg.Save(path))

		_, err := execute(t, "config", "validate", "--config", path)
		assert.ErrorContains(t, err, "unsupported schema_version")
	})
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "vitrify")
	assert.Contains(t, out, "assess")
	assert.Contains(t, out, "compare")
	assert.Contains(t, out, "chain")
	assert.Contains(t, out, "config")
}
