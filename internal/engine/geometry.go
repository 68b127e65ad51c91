package engine

import "fmt"

// AreaPerUnitM2 returns the exposed surface area of one IGU in m².
func AreaPerUnitM2(g IGUGroup) float64 {
	return (g.UnitWidthMM / 1000.0) * (g.UnitHeightMM / 1000.0)
}

// DefaultMassPerM2 returns the default surface mass for a glazing type,
// used when an IGUGroup carries no override.
func DefaultMassPerM2(glazing GlazingType) (float64, error) {
	switch glazing {
	case GlazingSingle:
		return MassPerM2Single, nil
	case GlazingDouble:
		return MassPerM2Double, nil
	case GlazingTriple:
		return MassPerM2Triple, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedGlazing, glazing)
	}
}

// MassPerM2 resolves the surface mass for a group, preferring the override.
func MassPerM2(g IGUGroup) (float64, error) {
	if g.MassPerM2Override != nil {
		return *g.MassPerM2Override, nil
	}
	return DefaultMassPerM2(g.Glazing)
}

// SecondarySealThicknessMM derives the secondary seal thickness from the
// glazing type and cavity thickness(es):
//   - single: 0 (no gas cavity)
//   - double: the cavity thickness
//   - triple: max of the two cavity thicknesses
func SecondarySealThicknessMM(g IGUGroup) (float64, error) {
	switch g.Glazing {
	case GlazingSingle:
		return 0, nil
	case GlazingDouble:
		return g.CavityMM, nil
	case GlazingTriple:
		if g.Cavity2MM > g.CavityMM {
			return g.Cavity2MM, nil
		}
		return g.CavityMM, nil
	default:
		return 0, fmt.Errorf("%w for seal calculation: %q", ErrUnsupportedGlazing, g.Glazing)
	}
}

// SealantVolumes holds primary and secondary sealant volumes for a group,
// per IGU and for the whole batch.
type SealantVolumes struct {
	PrimaryPerIGUM3      float64 `json:"primary_volume_per_igu_m3"`
	SecondaryPerIGUM3    float64 `json:"secondary_volume_per_igu_m3"`
	PrimaryTotalM3       float64 `json:"primary_volume_total_m3"`
	SecondaryTotalM3     float64 `json:"secondary_volume_total_m3"`
	SecondaryThicknessMM float64 `json:"secondary_thickness_mm"`
}

// ComputeSealantVolumes computes sealant volumes for an IGU group from the
// global seal geometry. Volume = perimeter × cross-section, where the
// cross-section is thickness × width and the secondary thickness is derived
// per SecondarySealThicknessMM.
func ComputeSealantVolumes(g IGUGroup, seal SealGeometry) (SealantVolumes, error) {
	widthM := g.UnitWidthMM / 1000.0
	heightM := g.UnitHeightMM / 1000.0
	perimeterM := 2.0 * (widthM + heightM)

	primarySectionM2 := (seal.PrimaryThicknessMM / 1000.0) * (seal.PrimaryWidthMM / 1000.0)
	primaryPerIGU := perimeterM * primarySectionM2

	secThicknessMM, err := SecondarySealThicknessMM(g)
	if err != nil {
		return SealantVolumes{}, err
	}
	secondarySectionM2 := (secThicknessMM / 1000.0) * (seal.SecondaryWidthMM / 1000.0)
	secondaryPerIGU := perimeterM * secondarySectionM2

	qty := float64(g.Quantity)
	return SealantVolumes{
		PrimaryPerIGUM3:      primaryPerIGU,
		SecondaryPerIGUM3:    secondaryPerIGU,
		PrimaryTotalM3:       primaryPerIGU * qty,
		SecondaryTotalM3:     secondaryPerIGU * qty,
		SecondaryThicknessMM: secThicknessMM,
	}, nil
}
