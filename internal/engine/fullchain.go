package engine

import "math"

// ComputeFullChainEmissions computes a project-level emission breakdown for
// the whole chain (donor building → processor → second site) in one pass,
// without threading a FlowState. It branches on process level (component vs
// system) and system path (reuse vs repurpose):
//
//   - component: transport B carries the remanufactured mass, and
//     remanufacturing emissions apply to the remanufactured area
//   - system: transport B carries the acceptable mass, disassembly applies
//     to the acceptable area, and the repurpose path charges the repurpose
//     factor on that area
//
// Quality control is carried as an explicit zero stage. Extra collects the
// diagnostic scalars (stats, masses, effective distances, stillage counts).
func ComputeFullChainEmissions(batch BatchInput) (EmissionBreakdown, error) {
	p := batch.Processes
	t := batch.Transport

	stats, err := AggregateGroups(batch.Groups, p)
	if err != nil {
		return EmissionBreakdown{}, err
	}
	masses, err := ComputeMassTotals(batch.Groups, stats)
	if err != nil {
		return EmissionBreakdown{}, err
	}

	nStillagesA := StillageCount(stats.AcceptableIGUs, p.IGUsPerStillage)

	var nStillagesB int
	if p.ProcessLevel == LevelComponent {
		nStillagesB = StillageCount(stats.RemanufacturedIGUs, p.IGUsPerStillage)
	} else {
		nStillagesB = StillageCount(stats.AcceptableIGUs, p.IGUsPerStillage)
	}

	stillageMassAKg := float64(nStillagesA) * p.StillageMassEmptyKg
	stillageMassBKg := float64(nStillagesB) * p.StillageMassEmptyKg

	dismantling := stats.TotalAreaM2 * p.DismantlingKgCO2PerM2

	pkgPerIGU := PackagingFactorPerIGU(p)
	packaging := stats.AcceptableIGUs * pkgPerIGU

	legA := ComputeLegEmissions(t, p.RouteAMode, LegA, masses.AcceptableMassKg, stillageMassAKg)

	payloadBKg := masses.AcceptableMassKg
	if p.ProcessLevel == LevelComponent {
		payloadBKg = masses.RemanufacturedMassKg
	}
	legB := ComputeLegEmissions(t, p.RouteBMode, LegB, payloadBKg, stillageMassBKg)

	disassembly := 0.0
	if p.ProcessLevel == LevelSystem {
		disassembly = stats.AcceptableAreaM2 * DisassemblyKgCO2PerM2
	}

	remanufacturing := 0.0
	switch p.ProcessLevel {
	case LevelComponent:
		remanufacturing = stats.RemanufacturedAreaM2 * RemanufacturingKgCO2PerM2
	case LevelSystem:
		if p.SystemPath == PathRepurpose {
			remanufacturing = stats.AcceptableAreaM2 * p.RepurposeKgCO2PerM2
		}
	}

	qualityControl := 0.0

	total := dismantling + packaging + legA.KgCO2 + disassembly +
		remanufacturing + qualityControl + legB.KgCO2

	extra := map[string]float64{
		"total_igus":             stats.TotalIGUs,
		"total_area_m2":          stats.TotalAreaM2,
		"acceptable_igus":        stats.AcceptableIGUs,
		"acceptable_area_m2":     stats.AcceptableAreaM2,
		"remanufactured_igus":    stats.RemanufacturedIGUs,
		"remanufactured_area_m2": stats.RemanufacturedAreaM2,
		"average_area_per_igu":   stats.AverageAreaPerIGU,
		"total_mass_kg":          masses.TotalMassKg,
		"acceptable_mass_kg":     masses.AcceptableMassKg,
		"remanufactured_mass_kg": masses.RemanufacturedMassKg,
		"avg_mass_per_igu_kg":    masses.AvgMassPerIGUKg,
		"n_stillages_a":          float64(nStillagesA),
		"n_stillages_b":          float64(nStillagesB),
		"truck_a_km_effective":   legA.TruckKmEff,
		"ferry_a_km_effective":   legA.FerryKmEff,
		"truck_b_km_effective":   legB.TruckKmEff,
		"ferry_b_km_effective":   legB.FerryKmEff,
		"mass_a_t":               legA.MassT,
		"mass_b_t":               legB.MassT,
		"packaging_per_igu":      pkgPerIGU,
		"repurpose_kgco2_per_m2": p.RepurposeKgCO2PerM2,
	}

	return EmissionBreakdown{
		DismantlingKgCO2:     dismantling,
		PackagingKgCO2:       packaging,
		TransportAKgCO2:      legA.KgCO2,
		DisassemblyKgCO2:     disassembly,
		RemanufacturingKgCO2: remanufacturing,
		QualityControlKgCO2:  qualityControl,
		TransportBKgCO2:      legB.KgCO2,
		TotalKgCO2:           total,
		Extra:                extra,
	}, nil
}

// Round3 rounds to three decimals, the reporting precision.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
