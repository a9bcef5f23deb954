package geometry

import (
	"math"
	"math/rand"
	"sync"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Config
// =============================================================================

const (
	// DefaultPaddingBase is the constant term of the adaptive padding formula.
	DefaultPaddingBase = 20.0

	// DefaultPaddingScale scales the average entity dimension into padding.
	DefaultPaddingScale = 0.1

	// DefaultPaddingMin is the usable minimum separation between entities.
	DefaultPaddingMin = 20.0

	// DefaultPaddingMax caps the separation for very large entities.
	DefaultPaddingMax = 100.0

	// DefaultForceDamping scales the repulsion magnitude below the raw
	// overlap. Full-overlap forces overcorrect and jitter.
	DefaultForceDamping = 0.8

	// DefaultZeroDistanceKick is the displacement magnitude applied when
	// two entities share an exact center and no direction gradient exists.
	DefaultZeroDistanceKick = 30.0

	// DefaultSpiralDirections is the number of angular probes per radius.
	DefaultSpiralDirections = 8

	// DefaultSpiralStepFraction sizes the spiral step as a fraction of the
	// entity's larger dimension.
	DefaultSpiralStepFraction = 0.1

	// DefaultSpiralMaxRadius bounds the spiral search.
	DefaultSpiralMaxRadius = 2000.0

	// DefaultSpiralTwist rotates each radius ring slightly (radians per
	// unit radius) so successive rings do not align on the same 8 rays
	// and miss gaps between them.
	DefaultSpiralTwist = 0.005

	// DefaultEdgePadding keeps placements away from zone edges.
	DefaultEdgePadding = 50.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// =============================================================================
// Params - Tuning Constants
// =============================================================================

// Params holds the engine's tuning constants. These are empirically-tuned
// UX parameters, not values derivable from other invariants; the test
// suite pins them via literal scenarios rather than re-deriving them.
type Params struct {
	PaddingBase  float64 `json:"padding_base,omitempty" toml:"padding_base"`
	PaddingScale float64 `json:"padding_scale,omitempty" toml:"padding_scale"`
	PaddingMin   float64 `json:"padding_min,omitempty" toml:"padding_min"`
	PaddingMax   float64 `json:"padding_max,omitempty" toml:"padding_max"`

	ForceDamping     float64 `json:"force_damping,omitempty" toml:"force_damping"`
	ZeroDistanceKick float64 `json:"zero_distance_kick,omitempty" toml:"zero_distance_kick"`

	SpiralDirections   int     `json:"spiral_directions,omitempty" toml:"spiral_directions"`
	SpiralStepFraction float64 `json:"spiral_step_fraction,omitempty" toml:"spiral_step_fraction"`
	SpiralMaxRadius    float64 `json:"spiral_max_radius,omitempty" toml:"spiral_max_radius"`
	SpiralTwist        float64 `json:"spiral_twist,omitempty" toml:"spiral_twist"`

	EdgePadding float64 `json:"edge_padding,omitempty" toml:"edge_padding"`
	Seed        uint64  `json:"seed,omitempty" toml:"seed"`
}

// DefaultParams returns the standard tuning constants.
func DefaultParams() Params {
	return Params{
		PaddingBase:        DefaultPaddingBase,
		PaddingScale:       DefaultPaddingScale,
		PaddingMin:         DefaultPaddingMin,
		PaddingMax:         DefaultPaddingMax,
		ForceDamping:       DefaultForceDamping,
		ZeroDistanceKick:   DefaultZeroDistanceKick,
		SpiralDirections:   DefaultSpiralDirections,
		SpiralStepFraction: DefaultSpiralStepFraction,
		SpiralMaxRadius:    DefaultSpiralMaxRadius,
		SpiralTwist:        DefaultSpiralTwist,
		EdgePadding:        DefaultEdgePadding,
		Seed:               DefaultSeed,
	}
}

// SetDefaults fills zero-valued fields with the standard constants.
// This method is idempotent.
func (p *Params) SetDefaults() {
	if p.PaddingBase == 0 {
		p.PaddingBase = DefaultPaddingBase
	}
	if p.PaddingScale == 0 {
		p.PaddingScale = DefaultPaddingScale
	}
	if p.PaddingMin == 0 {
		p.PaddingMin = DefaultPaddingMin
	}
	if p.PaddingMax == 0 {
		p.PaddingMax = DefaultPaddingMax
	}
	if p.ForceDamping == 0 {
		p.ForceDamping = DefaultForceDamping
	}
	if p.ZeroDistanceKick == 0 {
		p.ZeroDistanceKick = DefaultZeroDistanceKick
	}
	if p.SpiralDirections == 0 {
		p.SpiralDirections = DefaultSpiralDirections
	}
	if p.SpiralStepFraction == 0 {
		p.SpiralStepFraction = DefaultSpiralStepFraction
	}
	if p.SpiralMaxRadius == 0 {
		p.SpiralMaxRadius = DefaultSpiralMaxRadius
	}
	if p.SpiralTwist == 0 {
		p.SpiralTwist = DefaultSpiralTwist
	}
	if p.EdgePadding == 0 {
		p.EdgePadding = DefaultEdgePadding
	}
	if p.Seed == 0 {
		p.Seed = DefaultSeed
	}
}

// =============================================================================
// Engine
// =============================================================================

// Engine evaluates collision, repulsion, and placement queries against a
// size table and a set of tuning parameters. It holds no entity state and
// is safe for concurrent use.
type Engine struct {
	sizes  SizeTable
	params Params

	// rng breaks the zero-distance tie in Repulsion. rand.Rand is not
	// goroutine-safe, so it is guarded.
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an engine. A nil sizes table means DefaultSizes; zero
// params fields are filled with defaults.
func New(sizes SizeTable, params Params) *Engine {
	if sizes == nil {
		sizes = DefaultSizes()
	}
	params.SetDefaults()
	return &Engine{
		sizes:  sizes,
		params: params,
		rng:    rand.New(rand.NewSource(int64(params.Seed))),
	}
}

// Params returns the engine's tuning constants.
func (e *Engine) Params() Params { return e.params }

// Sizes returns the engine's size table.
func (e *Engine) Sizes() SizeTable { return e.sizes }

// randomAngle returns a uniformly random angle in [0, 2π).
func (e *Engine) randomAngle() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64() * 2 * math.Pi
}
