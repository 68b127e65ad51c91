package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyYieldLoss(t *testing.T) {
	start := FlowState{IGUs: 100, AreaM2: 180, MassKg: 3600}

	t.Run("zero loss is identity", func(t *testing.T) {
		assert.Equal(t, start, ApplyYieldLoss(start, 0))
	})

	t.Run("full loss zeroes all fields", func(t *testing.T) {
		got := ApplyYieldLoss(start, 1)
		assert.Zero(t, got.IGUs)
		assert.Zero(t, got.AreaM2)
		assert.Zero(t, got.MassKg)
	})

	t.Run("scales all fields by exactly 1-f", func(t *testing.T) {
		for _, f := range []float64{0.05, 0.2, 0.5, 0.95} {
			got := ApplyYieldLoss(start, f)
			keep := 1 - f
			assert.InDelta(t, start.IGUs*keep, got.IGUs, 1e-12)
			assert.InDelta(t, start.AreaM2*keep, got.AreaM2, 1e-12)
			assert.InDelta(t, start.MassKg*keep, got.MassKg, 1e-12)

			assert.LessOrEqual(t, got.IGUs, start.IGUs)
			assert.LessOrEqual(t, got.AreaM2, start.AreaM2)
			assert.LessOrEqual(t, got.MassKg, start.MassKg)
		}
	})

	t.Run("original is not mutated", func(t *testing.T) {
		_ = ApplyYieldLoss(start, 0.5)
		assert.Equal(t, FlowState{IGUs: 100, AreaM2: 180, MassKg: 3600}, start)
	})

	t.Run("sequential losses compose multiplicatively", func(t *testing.T) {
		a := ApplyYieldLoss(ApplyYieldLoss(start, 0.1), 0.2)
		assert.InDelta(t, 100*0.9*0.8, a.IGUs, 1e-12)
	})
}
