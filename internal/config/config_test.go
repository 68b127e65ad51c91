package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimosManiatis/vitrify/internal/engine"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SchemaVersion, cfg.SchemaVersion)
	assert.Len(t, cfg.Groups, 1)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vitrify.yaml")

	orig := Default()
	orig.Processes.BreakageRate = 0.03
	require.NoError(t, orig.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, orig.SchemaVersion, loaded.SchemaVersion)
	assert.Equal(t, 0.03, loaded.Processes.BreakageRate)
	assert.Equal(t, orig.Transport.Origin, loaded.Transport.Origin)
	assert.Equal(t, orig.Groups[0].Glazing, loaded.Groups[0].Glazing)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate_SchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr string
	}{
		{"current", "1.0.0", ""},
		{"newer patch", "1.2.3", ""},
		{"missing", "", "schema_version is required"},
		{"garbage", "not-a-version", "invalid schema_version"},
		{"next major", "2.0.0", "unsupported schema_version"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.SchemaVersion = tc.version
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllProblemsAtOnce(t *testing.T) {
	cfg := Default()
	cfg.Transport.BackhaulFactor = 0.5
	cfg.Processes.BreakageRate = 1.5
	cfg.Groups[0].Quantity = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "backhaul_factor")
	assert.ErrorContains(t, err, "breakage_rate")
	assert.ErrorContains(t, err, "quantity")
}

func TestValidate_Transport(t *testing.T) {
	cfg := Default()
	cfg.Transport.Origin.Lat = 91
	assert.ErrorContains(t, cfg.Validate(), "transport.origin.lat")

	cfg = Default()
	cfg.Transport.TruckFactor = -0.01
	assert.ErrorContains(t, cfg.Validate(), "truck_factor")
}

func TestValidate_Processes(t *testing.T) {
	cfg := Default()
	cfg.Processes.RouteAMode = "teleport"
	assert.ErrorContains(t, cfg.Validate(), "route_a_mode")

	cfg = Default()
	cfg.Processes.IGUsPerStillage = -1
	assert.ErrorContains(t, cfg.Validate(), "igus_per_stillage")
}

func TestValidate_Groups(t *testing.T) {
	cfg := Default()
	cfg.Groups[0].Glazing = "quadruple"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrUnsupportedGlazing)

	cfg = Default()
	bad := -5.0
	cfg.Groups[0].MassPerM2Override = &bad
	assert.ErrorContains(t, cfg.Validate(), "mass_per_m2_override")
}

func TestValidate_LoggingFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "logging.format")

	cfg.Logging.Format = "json"
	assert.NoError(t, cfg.Validate())
}
