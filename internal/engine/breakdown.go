package engine

import (
	"bytes"
	"encoding/json"
)

// StageBreakdown is an insertion-ordered mapping from stage name to
// accumulated emissions (kgCO2e). Iteration and serialization order equal
// execution order, so reports list stages in the order they ran.
type StageBreakdown struct {
	names  []string
	values map[string]float64
}

// NewStageBreakdown returns an empty breakdown.
func NewStageBreakdown() StageBreakdown {
	return StageBreakdown{values: make(map[string]float64)}
}

// Add records emissions for a stage. Adding an existing stage accumulates
// into it without changing its position.
func (b *StageBreakdown) Add(stage string, kgCO2 float64) {
	if b.values == nil {
		b.values = make(map[string]float64)
	}
	if _, ok := b.values[stage]; !ok {
		b.names = append(b.names, stage)
	}
	b.values[stage] += kgCO2
}

// Get returns the emissions recorded for a stage and whether it exists.
func (b StageBreakdown) Get(stage string) (float64, bool) {
	v, ok := b.values[stage]
	return v, ok
}

// Stages returns the stage names in execution order.
func (b StageBreakdown) Stages() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Len returns the number of stages.
func (b StageBreakdown) Len() int {
	return len(b.names)
}

// Total returns the sum of all stage emissions.
func (b StageBreakdown) Total() float64 {
	total := 0.0
	for _, name := range b.names {
		total += b.values[name]
	}
	return total
}

// StageEmission is one (stage, kgCO2e) pair for serialization.
type StageEmission struct {
	Stage  string  `json:"stage"`
	KgCO2e float64 `json:"kgco2e"`
}

// Entries returns the breakdown as ordered pairs.
func (b StageBreakdown) Entries() []StageEmission {
	out := make([]StageEmission, 0, len(b.names))
	for _, name := range b.names {
		out = append(out, StageEmission{Stage: name, KgCO2e: b.values[name]})
	}
	return out
}

// MarshalJSON encodes the breakdown as an ordered array of stage entries.
func (b StageBreakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Entries())
}

// UnmarshalJSON restores a breakdown from the ordered-array encoding.
func (b *StageBreakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	var entries []StageEmission
	if err := dec.Decode(&entries); err != nil {
		return err
	}
	*b = NewStageBreakdown()
	for _, e := range entries {
		b.Add(e.Stage, e.KgCO2e)
	}
	return nil
}
