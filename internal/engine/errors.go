package engine

import "errors"

// Sentinel errors returned by the engine. Structural violations abort the
// computation; degenerate numeric inputs (empty batch, coincident sites)
// degrade to fallbacks instead of raising.
var (
	// ErrMixedGlazing is returned when a batch mixes glazing types.
	ErrMixedGlazing = errors.New("mixed glazing types in batch are not supported")

	// ErrUnsupportedGlazing is returned for glazing types outside
	// single/double/triple.
	ErrUnsupportedGlazing = errors.New("unsupported glazing type")

	// ErrEmptyBatch is returned by callers that require material where a
	// batch aggregated to zero IGUs.
	ErrEmptyBatch = errors.New("batch contains no IGUs")

	// ErrUnknownPreset is returned for unrecognized preset names.
	ErrUnknownPreset = errors.New("unknown preset")
)
