package geometry

import (
	"math"

	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Repulsion - Per-Frame Displacement Vector
// =============================================================================

// Force is a displacement for one neighbor of a dragged entity. DX and DY
// are the position offset to apply to the neighbor, pushing it away from
// the dragged entity along the center-to-center axis. Strength is in
// [0,1]; the zero value means "no interaction". Callers with many
// simultaneous neighbors typically divide accumulated displacement by the
// active-neighbor count to avoid compounding.
type Force struct {
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Strength float64 `json:"strength"`
}

// IsZero reports whether the force denotes no interaction.
func (f Force) IsZero() bool { return f.DX == 0 && f.DY == 0 && f.Strength == 0 }

// Repulsion computes the force the dragged entity exerts on another,
// intended to run once per frame per neighbor for the duration of a drag
// gesture.
//
// Both entities' bounds are expanded by the full adaptive padding (not
// half, as in DetectCollision): the repulsion zone is larger than the
// collision test so neighbors start reacting before their unpadded boxes
// actually touch. Outside the zone the force is exactly zero. Inside it,
// the magnitude is the damped minimum overlap, eased with a smoothstep on
// the normalized overlap so there is no abrupt onset at the zone boundary.
//
// When the two centers coincide exactly there is no direction gradient to
// disambiguate, so the neighbor is kicked in a uniformly random direction
// at full strength. Never fails; always returns a well-formed result.
func (e *Engine) Repulsion(dragged, other *scene.Entity) Force {
	if dragged.ZoneID != other.ZoneID {
		return Force{}
	}

	pad := e.Padding(dragged, other)
	zd := e.Bounds(dragged).Expand(pad)
	zo := e.Bounds(other).Expand(pad)

	if !zd.overlaps(zo) {
		return Force{}
	}

	ox := overlap(zd.X, zd.Right(), zo.X, zo.Right())
	oy := overlap(zd.Y, zd.Bottom(), zo.Y, zo.Bottom())

	dx := zo.CenterX() - zd.CenterX()
	dy := zo.CenterY() - zd.CenterY()
	dist := math.Hypot(dx, dy)

	if dist == 0 {
		angle := e.randomAngle()
		kick := e.params.ZeroDistanceKick
		return Force{
			DX:       math.Cos(angle) * kick,
			DY:       math.Sin(angle) * kick,
			Strength: 1,
		}
	}

	minOverlap := math.Min(ox, oy)
	maxDim := math.Max(math.Max(zd.Width, zd.Height), math.Max(zo.Width, zo.Height))
	n := math.Min(minOverlap/maxDim, 1)
	strength := n * n * (3 - 2*n) // smoothstep

	mag := minOverlap * e.params.ForceDamping
	return Force{
		DX:       dx / dist * mag,
		DY:       dy / dist * mag,
		Strength: strength,
	}
}
