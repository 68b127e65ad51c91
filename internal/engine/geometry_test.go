package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroup(glazing GlazingType, qty int, widthMM, heightMM float64) IGUGroup {
	return IGUGroup{
		Quantity:         qty,
		UnitWidthMM:      widthMM,
		UnitHeightMM:     heightMM,
		Glazing:          glazing,
		GlassOuter:       GlassAnnealed,
		GlassInner:       GlassAnnealed,
		Coating:          CoatingNone,
		SealantSecondary: SealantPolysulfide,
		Spacer:           SpacerAluminium,
		Condition: IGUCondition{
			EdgeSeal:     EdgeSealAcceptable,
			AgeYears:     20,
			ReuseAllowed: true,
		},
		ThicknessOuterMM: 4,
		ThicknessInnerMM: 4,
		CavityMM:         16,
		DepthMM:          24,
	}
}

func TestAreaPerUnitM2(t *testing.T) {
	g := testGroup(GlazingDouble, 100, 1200, 1500)
	assert.InDelta(t, 1.8, AreaPerUnitM2(g), 1e-9)
}

func TestDefaultMassPerM2(t *testing.T) {
	tests := []struct {
		glazing GlazingType
		want    float64
	}{
		{GlazingSingle, 10},
		{GlazingDouble, 20},
		{GlazingTriple, 30},
	}
	for _, tc := range tests {
		got, err := DefaultMassPerM2(tc.glazing)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := DefaultMassPerM2(GlazingType("quadruple"))
	require.ErrorIs(t, err, ErrUnsupportedGlazing)
}

func TestMassPerM2_Override(t *testing.T) {
	g := testGroup(GlazingDouble, 1, 1000, 1000)
	override := 25.5
	g.MassPerM2Override = &override

	got, err := MassPerM2(g)
	require.NoError(t, err)
	assert.Equal(t, 25.5, got)
}

func TestSecondarySealThicknessMM(t *testing.T) {
	t.Run("single has no cavity", func(t *testing.T) {
		g := testGroup(GlazingSingle, 1, 1000, 1000)
		got, err := SecondarySealThicknessMM(g)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("double equals cavity", func(t *testing.T) {
		g := testGroup(GlazingDouble, 1, 1000, 1000)
		g.CavityMM = 16
		got, err := SecondarySealThicknessMM(g)
		require.NoError(t, err)
		assert.Equal(t, 16.0, got)
	})

	t.Run("triple takes the larger cavity", func(t *testing.T) {
		g := testGroup(GlazingTriple, 1, 1000, 1000)
		g.CavityMM = 12
		g.Cavity2MM = 14
		got, err := SecondarySealThicknessMM(g)
		require.NoError(t, err)
		assert.Equal(t, 14.0, got)

		g.Cavity2MM = 10
		got, err = SecondarySealThicknessMM(g)
		require.NoError(t, err)
		assert.Equal(t, 12.0, got)
	})

	t.Run("unsupported glazing", func(t *testing.T) {
		g := testGroup(GlazingDouble, 1, 1000, 1000)
		g.Glazing = GlazingType("vacuum")
		_, err := SecondarySealThicknessMM(g)
		require.ErrorIs(t, err, ErrUnsupportedGlazing)
	})
}

func TestComputeSealantVolumes(t *testing.T) {
	// 1m x 2m double unit, 16mm cavity, 10 units.
	g := testGroup(GlazingDouble, 10, 1000, 2000)
	g.CavityMM = 16
	seal := SealGeometry{
		PrimaryThicknessMM: 0.5,
		PrimaryWidthMM:     10,
		SecondaryWidthMM:   8,
	}

	vols, err := ComputeSealantVolumes(g, seal)
	require.NoError(t, err)

	// Perimeter 6 m; primary section 0.0005*0.01 = 5e-6 m².
	assert.InDelta(t, 6*5e-6, vols.PrimaryPerIGUM3, 1e-12)
	// Secondary section 0.016*0.008 = 1.28e-4 m².
	assert.InDelta(t, 6*1.28e-4, vols.SecondaryPerIGUM3, 1e-12)
	assert.InDelta(t, vols.PrimaryPerIGUM3*10, vols.PrimaryTotalM3, 1e-12)
	assert.InDelta(t, vols.SecondaryPerIGUM3*10, vols.SecondaryTotalM3, 1e-12)
	assert.Equal(t, 16.0, vols.SecondaryThicknessMM)
}

func TestPanesPerIGU(t *testing.T) {
	for glazing, want := range map[GlazingType]int{
		GlazingSingle: 1,
		GlazingDouble: 2,
		GlazingTriple: 3,
	} {
		got, err := glazing.PanesPerIGU()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := GlazingType("unknown").PanesPerIGU()
	require.ErrorIs(t, err, ErrUnsupportedGlazing)
}
