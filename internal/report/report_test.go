package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimosManiatis/vitrify/internal/engine"
)

func sampleScenario() engine.ScenarioResult {
	by := engine.NewStageBreakdown()
	by.Add(engine.StageDismantlingESite, 27.0)
	by.Add(engine.StageTransportA, 57.823)
	by.Add(engine.StageInstallation, 45.0)

	return engine.ScenarioResult{
		ScenarioName:  engine.ScenarioSystemReuse,
		TotalKgCO2:    by.Total(),
		ByStage:       by,
		InitialIGUs:   100,
		FinalIGUs:     80,
		InitialAreaM2: 180,
		FinalAreaM2:   144,
		InitialMassKg: 3600,
		FinalMassKg:   2880,
		YieldPercent:  80,
	}
}

func TestRenderScenario_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderScenario(&buf, sampleScenario(), Options{}))
	out := buf.String()

	assert.Contains(t, out, "SYSTEM REUSE")
	assert.Contains(t, out, engine.StageDismantlingESite)
	assert.Contains(t, out, "27.000")
	assert.Contains(t, out, "57.823")
	assert.Contains(t, out, "yield 80.0%")
	assert.Contains(t, out, "Equivalent to driving")

	// 129.823 total over 144 m² of output area.
	assert.Contains(t, out, "Intensity")
	assert.Contains(t, out, "0.902")

	// Stage rows keep execution order.
	dis := strings.Index(out, engine.StageDismantlingESite)
	tra := strings.Index(out, engine.StageTransportA)
	ins := strings.Index(out, engine.StageInstallation)
	assert.Less(t, dis, tra)
	assert.Less(t, tra, ins)
}

func TestRenderScenario_Styled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderScenario(&buf, sampleScenario(), Options{Styled: true}))
	assert.Contains(t, buf.String(), "SYSTEM REUSE")
}

func TestRenderComparison_RanksByTotal(t *testing.T) {
	a := sampleScenario()
	a.ScenarioName = "Component Reuse"
	a.TotalKgCO2 = 300

	b := sampleScenario()
	b.ScenarioName = "System Reuse"
	b.TotalKgCO2 = 120

	c := sampleScenario()
	c.ScenarioName = "Open-Loop Recycling"
	c.TotalKgCO2 = 210

	var buf bytes.Buffer
	cmp := engine.Comparison{RunID: "01JTESTRUNID", Results: []engine.ScenarioResult{a, b, c}}
	require.NoError(t, RenderComparison(&buf, cmp, Options{}))
	out := buf.String()

	// Lowest total first, marker on the winner, run ID echoed.
	first := strings.Index(out, "System Reuse")
	second := strings.Index(out, "Open-Loop Recycling")
	third := strings.Index(out, "Component Reuse")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Contains(t, out, "<- lowest")
	assert.Contains(t, out, "01JTESTRUNID")

	// Input order untouched.
	assert.Equal(t, "Component Reuse", cmp.Results[0].ScenarioName)
}

func TestRenderFullChain(t *testing.T) {
	br := engine.EmissionBreakdown{
		DismantlingKgCO2: 27,
		TransportAKgCO2:  57.8,
		TotalKgCO2:       84.8,
		Extra:            map[string]float64{"total_area_m2": 180},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderFullChain(&buf, br, Options{}))
	out := buf.String()

	assert.Contains(t, out, "Dismantling")
	assert.Contains(t, out, "Quality control")
	assert.Contains(t, out, "Intensity")
	// 84.8 / 180 m²
	assert.Contains(t, out, "0.471")
}

func TestRenderGeometryOverview(t *testing.T) {
	group := engine.IGUGroup{
		Quantity:     100,
		UnitWidthMM:  1200,
		UnitHeightMM: 1500,
		Glazing:      engine.GlazingDouble,
		CavityMM:     16,
	}
	seal := engine.SealGeometry{
		PrimaryThicknessMM: 0.5,
		PrimaryWidthMM:     10,
		SecondaryWidthMM:   6,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderGeometryOverview(&buf, []engine.IGUGroup{group}, seal, Options{}))
	out := buf.String()

	assert.Contains(t, out, "IGU GEOMETRY")
	assert.Contains(t, out, "100 × double")
	// 1.80 m² per unit at 20 kg/m².
	assert.Contains(t, out, "1.80 m²/unit")
	assert.Contains(t, out, "36.0 kg/unit")
	// Perimeter 5.4 m × 0.5 mm × 10 mm primary cross-section.
	assert.Contains(t, out, "0.000027 m³/unit")
	// Secondary thickness derived from the 16 mm cavity.
	assert.Contains(t, out, "16.0 mm thick")
	assert.Contains(t, out, "0.000518 m³/unit")
}

func TestRenderGeometryOverview_UnknownGlazing(t *testing.T) {
	group := engine.IGUGroup{Quantity: 1, UnitWidthMM: 1000, UnitHeightMM: 1000, Glazing: "quadruple"}

	var buf bytes.Buffer
	err := RenderGeometryOverview(&buf, []engine.IGUGroup{group}, engine.SealGeometry{}, Options{})
	assert.ErrorIs(t, err, engine.ErrUnsupportedGlazing)
}

func TestRenderBatchOverview(t *testing.T) {
	stats := engine.BatchStats{
		TotalIGUs: 100, TotalAreaM2: 180,
		AcceptableIGUs: 90, AcceptableAreaM2: 162,
		RemanufacturedIGUs: 76.5, RemanufacturedAreaM2: 137.7,
		AverageAreaPerIGU: 1.8,
	}
	masses := engine.MassTotals{TotalMassKg: 3600, AcceptableMassKg: 3240, RemanufacturedMassKg: 2754, AvgMassPerIGUKg: 36}

	var buf bytes.Buffer
	require.NoError(t, RenderBatchOverview(&buf, stats, masses, Options{}))
	out := buf.String()

	assert.Contains(t, out, "BATCH OVERVIEW")
	assert.Contains(t, out, "76.50")
	assert.Contains(t, out, "3,600.0")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "scenario", sampleScenario()))

	var env struct {
		Kind    string          `json:"kind"`
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, "scenario", env.Kind)

	var res engine.ScenarioResult
	require.NoError(t, json.Unmarshal(env.Payload, &res))
	assert.Equal(t, engine.ScenarioSystemReuse, res.ScenarioName)
	assert.Equal(t, []string{
		engine.StageDismantlingESite, engine.StageTransportA, engine.StageInstallation,
	}, res.ByStage.Stages())
}
