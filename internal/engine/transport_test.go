package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTransport() TransportConfig {
	return DefaultTransportConfig(
		Location{Lat: 0, Lon: 0},
		Location{Lat: 0, Lon: 1},
	)
}

func TestHaversineKm(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km.
	d := HaversineKm(Location{0, 0}, Location{0, 1})
	assert.InDelta(t, 111.19, d, 0.05)

	assert.Zero(t, HaversineKm(Location{51.5, -0.1}, Location{51.5, -0.1}))
}

func TestComputeRouteDistances_Fallback(t *testing.T) {
	// Coincident endpoints substitute the configured fallback, not 0.
	same := Location{Lat: 52.0, Lon: 4.3}
	cfg := DefaultTransportConfig(same, same)
	cfg.FallbackAKm = 75
	cfg.FallbackBKm = 42

	d := ComputeRouteDistances(cfg)
	assert.Equal(t, 75.0, d.TruckAKm)
	assert.Equal(t, 42.0, d.TruckBKm) // reuse defaults to processor
	assert.Zero(t, d.FerryAKm)
	assert.Zero(t, d.FerryBKm)
}

func TestComputeRouteDistances_OverridePrecedence(t *testing.T) {
	cfg := testTransport()
	truckA := 500.0
	ferryA := 120.0
	truckB := 30.0
	ferryB := 65.0
	cfg.TruckAOverrideKm = &truckA
	cfg.FerryAOverrideKm = &ferryA
	cfg.TruckBOverrideKm = &truckB
	cfg.FerryBOverrideKm = &ferryB

	d := ComputeRouteDistances(cfg)
	assert.Equal(t, 500.0, d.TruckAKm)
	assert.Equal(t, 120.0, d.FerryAKm)
	assert.Equal(t, 30.0, d.TruckBKm)
	assert.Equal(t, 65.0, d.FerryBKm)
}

func TestComputeRouteDistances_FerryIsOverrideOnly(t *testing.T) {
	d := ComputeRouteDistances(testTransport())
	assert.Greater(t, d.TruckAKm, 0.0)
	assert.Zero(t, d.FerryAKm)
	assert.Zero(t, d.FerryBKm)
}

func TestStillageCount(t *testing.T) {
	assert.Equal(t, 0, StillageCount(100, 0))
	assert.Equal(t, 5, StillageCount(100, 20))
	assert.Equal(t, 6, StillageCount(101, 20))
	assert.Equal(t, 1, StillageCount(0.5, 20))
	assert.Equal(t, 0, StillageCount(0, 20))
}

func TestComputeLegEmissions_WorkedExample(t *testing.T) {
	// origin (0,0) -> processor (0,1) is ~111.19 km; backhaul 1.3,
	// truck 0.04 kgCO2e/tkm, 10 t payload, road-only:
	// 10 * (111.19*1.3*0.04) = ~57.82 kgCO2e.
	cfg := testTransport()
	leg := ComputeLegEmissions(cfg, ModeRoad, LegA, 10000, 0)

	assert.InDelta(t, 57.82, leg.KgCO2, 0.05)
	assert.InDelta(t, 10.0, leg.MassT, 1e-9)
	assert.Zero(t, leg.FerryKmEff)
}

func TestComputeLegEmissions_RoadOnlyForcesFerryToZero(t *testing.T) {
	// Mode gating applies after override resolution: even an explicit ferry
	// override is zeroed on a road-only leg.
	cfg := testTransport()
	ferryA := 200.0
	cfg.FerryAOverrideKm = &ferryA

	road := ComputeLegEmissions(cfg, ModeRoad, LegA, 10000, 0)
	assert.Zero(t, road.FerryKmEff)

	mixed := ComputeLegEmissions(cfg, ModeRoadFerry, LegA, 10000, 0)
	assert.InDelta(t, 200.0*cfg.BackhaulFactor, mixed.FerryKmEff, 1e-9)
	assert.Greater(t, mixed.KgCO2, road.KgCO2)
}

func TestComputeLegEmissions_PackagingMassCounts(t *testing.T) {
	cfg := testTransport()
	bare := ComputeLegEmissions(cfg, ModeRoad, LegA, 10000, 0)
	racked := ComputeLegEmissions(cfg, ModeRoad, LegA, 10000, 1500)

	assert.InDelta(t, 11.5, racked.MassT, 1e-9)
	assert.InDelta(t, bare.KgCO2*11.5/10.0, racked.KgCO2, 1e-9)
}

func TestComputeLegEmissions_LegB(t *testing.T) {
	cfg := testTransport()
	cfg.Reuse = Location{Lat: 0, Lon: 3}

	legB := ComputeLegEmissions(cfg, ModeRoad, LegB, 1000, 0)
	// processor (0,1) -> reuse (0,3) is ~222.4 km before backhaul.
	assert.InDelta(t, 222.4*cfg.BackhaulFactor, legB.TruckKmEff, 0.2)
}

func TestTransportConfigDerivations(t *testing.T) {
	cfg := testTransport()
	dst := Location{Lat: 10, Lon: 10}

	derived := cfg.WithDestination(dst)
	assert.Equal(t, dst, derived.Reuse)
	assert.Equal(t, cfg.Processor, cfg.Reuse) // original untouched
	assert.NotEqual(t, cfg.Reuse, derived.Reuse)

	faster := cfg.WithTruckFactor(0.0075)
	assert.Equal(t, 0.0075, faster.TruckFactor)
	assert.Equal(t, TruckFactorDefault, cfg.TruckFactor)
}
