// Package config loads and validates the vitrify YAML configuration: the
// logging setup plus a complete assessment input (transport network, process
// settings, seal geometry and IGU groups) so runs can be scripted instead of
// prompted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/SimosManiatis/vitrify/internal/engine"
)

// SchemaVersion is the current config schema version written by `config init`.
const SchemaVersion = "1.0.0"

// schemaConstraint accepts any 1.x config file.
var schemaConstraint = mustConstraint("^1.0.0")

// DefaultFileName is the config file looked up in the working directory when
// no --config flag is given.
const DefaultFileName = "vitrify.yaml"

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Config is the full vitrify configuration.
type Config struct {
	SchemaVersion string `yaml:"schema_version"`

	Logging   LoggingConfig          `yaml:"logging"`
	Transport engine.TransportConfig `yaml:"transport"`
	Processes engine.ProcessSettings `yaml:"processes"`
	Seal      engine.SealGeometry    `yaml:"seal"`
	Groups    []engine.IGUGroup      `yaml:"groups"`
}

// Default returns a config populated with the model defaults and a single
// illustrative IGU group, suitable as a `config init` template.
func Default() *Config {
	origin := engine.Location{Lat: 52.0116, Lon: 4.3571}    // Delft
	processor := engine.Location{Lat: 51.9225, Lon: 4.4792} // Rotterdam

	return &Config{
		SchemaVersion: SchemaVersion,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Transport: engine.DefaultTransportConfig(origin, processor),
		Processes: engine.DefaultProcessSettings(),
		Seal: engine.SealGeometry{
			PrimaryThicknessMM: 0.5,
			PrimaryWidthMM:     10,
			SecondaryWidthMM:   6,
		},
		Groups: []engine.IGUGroup{
			{
				Quantity:         100,
				UnitWidthMM:      1200,
				UnitHeightMM:     1500,
				Glazing:          engine.GlazingDouble,
				GlassOuter:       engine.GlassAnnealed,
				GlassInner:       engine.GlassAnnealed,
				Coating:          engine.CoatingNone,
				SealantSecondary: engine.SealantPolysulfide,
				Spacer:           engine.SpacerAluminium,
				Condition: engine.IGUCondition{
					EdgeSeal:     engine.EdgeSealAcceptable,
					ReuseAllowed: true,
				},
				ThicknessOuterMM: 4,
				ThicknessInnerMM: 4,
				CavityMM:         16,
				DepthMM:          24,
			},
		},
	}
}

// Load reads and validates a config file. A schema version outside the
// supported range fails before any field validation runs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}

// Validate checks the schema version and every section for values the model
// cannot run with. All findings are joined so a broken file reports its
// problems in one pass.
func (c *Config) Validate() error {
	if err := c.validateSchemaVersion(); err != nil {
		return err
	}

	var errs []error

	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateTransport()...)
	errs = append(errs, c.validateProcesses()...)
	errs = append(errs, c.validateGroups()...)

	return errors.Join(errs...)
}

func (c *Config) validateSchemaVersion() error {
	if c.SchemaVersion == "" {
		return errors.New("schema_version is required")
	}

	v, err := semver.NewVersion(c.SchemaVersion)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", c.SchemaVersion, err)
	}

	if !schemaConstraint.Check(v) {
		return fmt.Errorf("unsupported schema_version %s: this build supports %s", v, schemaConstraint)
	}

	return nil
}

func (c *Config) validateLogging() []error {
	var errs []error

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: must be console or json", c.Logging.Format))
	}

	return errs
}

func (c *Config) validateTransport() []error {
	var errs []error
	t := c.Transport

	if t.BackhaulFactor < 1 {
		errs = append(errs, fmt.Errorf("transport.backhaul_factor %g: must be >= 1", t.BackhaulFactor))
	}
	if t.TruckFactor < 0 {
		errs = append(errs, fmt.Errorf("transport.truck_factor %g: must be >= 0", t.TruckFactor))
	}
	if t.FerryFactor < 0 {
		errs = append(errs, fmt.Errorf("transport.ferry_factor %g: must be >= 0", t.FerryFactor))
	}
	for _, loc := range []struct {
		name string
		loc  engine.Location
	}{
		{"transport.origin", t.Origin},
		{"transport.processor", t.Processor},
		{"transport.reuse", t.Reuse},
	} {
		if loc.loc.Lat < -90 || loc.loc.Lat > 90 {
			errs = append(errs, fmt.Errorf("%s.lat %g: must be in [-90, 90]", loc.name, loc.loc.Lat))
		}
		if loc.loc.Lon < -180 || loc.loc.Lon > 180 {
			errs = append(errs, fmt.Errorf("%s.lon %g: must be in [-180, 180]", loc.name, loc.loc.Lon))
		}
	}

	return errs
}

func (c *Config) validateProcesses() []error {
	var errs []error
	p := c.Processes

	for _, rate := range []struct {
		name  string
		value float64
	}{
		{"processes.breakage_rate", p.BreakageRate},
		{"processes.humidity_failure_rate", p.HumidityFailureRate},
		{"processes.split_yield", p.SplitYield},
		{"processes.remanufacturing_yield", p.RemanufacturingYield},
	} {
		if rate.value < 0 || rate.value > 1 {
			errs = append(errs, fmt.Errorf("%s %g: must be a fraction in [0, 1]", rate.name, rate.value))
		}
	}

	if p.IGUsPerStillage < 0 {
		errs = append(errs, fmt.Errorf("processes.igus_per_stillage %d: must be >= 0", p.IGUsPerStillage))
	}
	if p.StillageMassEmptyKg < 0 {
		errs = append(errs, fmt.Errorf("processes.stillage_mass_empty_kg %g: must be >= 0", p.StillageMassEmptyKg))
	}
	if p.DismantlingKgCO2PerM2 < 0 {
		errs = append(errs, fmt.Errorf("processes.dismantling_kgco2_per_m2 %g: must be >= 0", p.DismantlingKgCO2PerM2))
	}

	switch p.RouteAMode {
	case engine.ModeRoad, engine.ModeRoadFerry:
	default:
		errs = append(errs, fmt.Errorf("processes.route_a_mode %q: unknown transport mode", p.RouteAMode))
	}
	switch p.RouteBMode {
	case engine.ModeRoad, engine.ModeRoadFerry:
	default:
		errs = append(errs, fmt.Errorf("processes.route_b_mode %q: unknown transport mode", p.RouteBMode))
	}

	return errs
}

func (c *Config) validateGroups() []error {
	var errs []error

	for i, g := range c.Groups {
		if g.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("groups[%d].quantity %d: must be > 0", i, g.Quantity))
		}
		if g.UnitWidthMM <= 0 || g.UnitHeightMM <= 0 {
			errs = append(errs, fmt.Errorf("groups[%d]: unit dimensions must be > 0", i))
		}
		if _, err := g.Glazing.PanesPerIGU(); err != nil {
			errs = append(errs, fmt.Errorf("groups[%d].glazing_type %q: %w", i, g.Glazing, err))
		}
		if g.MassPerM2Override != nil && *g.MassPerM2Override <= 0 {
			errs = append(errs, fmt.Errorf("groups[%d].mass_per_m2_override %g: must be > 0", i, *g.MassPerM2Override))
		}
	}

	return errs
}

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}
