package engine

import "math"

// RouteDistances holds the baseline leg distances in km:
// A = origin → processor, B = processor → reuse site.
type RouteDistances struct {
	TruckAKm float64 `json:"truck_a_km"`
	FerryAKm float64 `json:"ferry_a_km"`
	TruckBKm float64 `json:"truck_b_km"`
	FerryBKm float64 `json:"ferry_b_km"`
}

// HaversineKm returns the great-circle distance between two locations in
// kilometres.
func HaversineKm(a, b Location) float64 {
	lat1 := radians(a.Lat)
	lon1 := radians(a.Lon)
	lat2 := radians(b.Lat)
	lon2 := radians(b.Lon)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ComputeRouteDistances computes baseline truck and ferry distances for
// both legs. A non-positive great-circle distance (coincident endpoints)
// substitutes the leg's configured fallback. Explicit per-leg overrides
// always win, even over a computed distance. Ferry distances are
// override-only: haversine never yields a ferry leg.
//
// Route-mode gating (forcing ferry to 0 on road-only legs) is applied by
// each stage's transport computation after override resolution, not here.
func ComputeRouteDistances(t TransportConfig) RouteDistances {
	baseA := HaversineKm(t.Origin, t.Processor)
	baseB := HaversineKm(t.Processor, t.Reuse)

	if baseA <= 0 {
		baseA = t.FallbackAKm
	}
	if baseB <= 0 {
		baseB = t.FallbackBKm
	}

	d := RouteDistances{TruckAKm: baseA, TruckBKm: baseB}

	if t.TruckAOverrideKm != nil {
		d.TruckAKm = *t.TruckAOverrideKm
	}
	if t.FerryAOverrideKm != nil {
		d.FerryAKm = *t.FerryAOverrideKm
	}
	if t.TruckBOverrideKm != nil {
		d.TruckBKm = *t.TruckBOverrideKm
	}
	if t.FerryBOverrideKm != nil {
		d.FerryBKm = *t.FerryBOverrideKm
	}

	return d
}

// StillageCount returns the number of stillages needed for a unit count:
// ceil(igus / capacity), or 0 when the capacity is non-positive.
func StillageCount(igus float64, igusPerStillage int) int {
	if igusPerStillage <= 0 {
		return 0
	}
	return int(math.Ceil(igus / float64(igusPerStillage)))
}

// StillageMassKg returns the empty packaging mass travelling with a unit
// count.
func StillageMassKg(igus float64, p ProcessSettings) float64 {
	return float64(StillageCount(igus, p.IGUsPerStillage)) * p.StillageMassEmptyKg
}

// TransportLeg identifies which leg of the route a computation refers to.
type TransportLeg int

// Route legs.
const (
	LegA TransportLeg = iota // origin → processor
	LegB                     // processor → second site
)

// LegEmissions is the transport result for one leg.
type LegEmissions struct {
	KgCO2      float64 // transport emissions for the leg
	TruckKmEff float64 // truck distance after mode gating and backhaul
	FerryKmEff float64 // ferry distance after mode gating and backhaul
	MassT      float64 // transported mass (payload + packaging) in tonnes
}

// ComputeLegEmissions resolves a leg's effective distances (override →
// mode gating → backhaul) and converts payload plus packaging mass into
// transport emissions:
//
//	kgCO2 = tonnes × (truckKm × truckFactor + ferryKm × ferryFactor)
//
// Every stage calls this against the then-current FlowState, so stillage
// counts are re-derived per stage rather than shared.
func ComputeLegEmissions(
	t TransportConfig,
	mode TransportMode,
	leg TransportLeg,
	payloadMassKg float64,
	packagingMassKg float64,
) LegEmissions {
	d := ComputeRouteDistances(t)

	truckKm, ferryKm := d.TruckAKm, d.FerryAKm
	if leg == LegB {
		truckKm, ferryKm = d.TruckBKm, d.FerryBKm
	}

	// Road-only legs carry no ferry distance, regardless of overrides.
	if mode != ModeRoadFerry {
		ferryKm = 0
	}

	truckKm *= t.BackhaulFactor
	ferryKm *= t.BackhaulFactor

	massT := (payloadMassKg + packagingMassKg) / 1000.0
	kgCO2 := massT * (truckKm*t.TruckFactor + ferryKm*t.FerryFactor)

	return LegEmissions{
		KgCO2:      kgCO2,
		TruckKmEff: truckKm,
		FerryKmEff: ferryKm,
		MassT:      massT,
	}
}
