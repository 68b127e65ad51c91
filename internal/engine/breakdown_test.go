package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageBreakdown_PreservesInsertionOrder(t *testing.T) {
	b := NewStageBreakdown()
	b.Add(StageDismantlingESite, 27.0)
	b.Add(StageTransportA, 57.8)
	b.Add(StageTransportB, 12.1)

	assert.Equal(t, []string{StageDismantlingESite, StageTransportA, StageTransportB}, b.Stages())
	assert.Equal(t, 3, b.Len())
	assert.InDelta(t, 96.9, b.Total(), 1e-9)

	v, ok := b.Get(StageTransportA)
	require.True(t, ok)
	assert.Equal(t, 57.8, v)

	_, ok = b.Get("Quality Control")
	assert.False(t, ok)
}

func TestStageBreakdown_AccumulatesWithoutReordering(t *testing.T) {
	b := NewStageBreakdown()
	b.Add("a", 1)
	b.Add("b", 2)
	b.Add("a", 3)

	assert.Equal(t, []string{"a", "b"}, b.Stages())
	v, _ := b.Get("a")
	assert.Equal(t, 4.0, v)
}

func TestStageBreakdown_JSONRoundTrip(t *testing.T) {
	b := NewStageBreakdown()
	b.Add("Dismantling", 10.5)
	b.Add("Transport A", 20.25)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"stage":"Dismantling","kgco2e":10.5},{"stage":"Transport A","kgco2e":20.25}]`,
		string(data))

	var back StageBreakdown
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, b.Stages(), back.Stages())
	assert.InDelta(t, b.Total(), back.Total(), 1e-12)
}

func TestStageBreakdown_ZeroValueUsable(t *testing.T) {
	var b StageBreakdown
	b.Add("x", 1)
	assert.Equal(t, 1.0, b.Total())
}
