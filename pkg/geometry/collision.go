package geometry

import (
	"math"

	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Collision - Padded AABB Overlap Test
// =============================================================================

// Collision is the result of one pairwise overlap test. OverlapX and
// OverlapY are only meaningful when Colliding is true. Distance is the
// center-to-center Euclidean distance and is valid regardless of the
// collision state, so callers can drive proximity feedback without a
// second pass; it is +Inf for cross-zone pairs.
type Collision struct {
	Colliding bool    `json:"colliding"`
	OverlapX  float64 `json:"overlap_x"`
	OverlapY  float64 `json:"overlap_y"`
	Distance  float64 `json:"distance"`
}

// DetectCollision tests whether two entities' padded bounds overlap.
//
// Entities in different zones are never in collision space: the result is
// immediately non-colliding with infinite distance. Otherwise each box is
// expanded by padding/2 on every side and tested with the strict AABB
// test, so exact edge-touching counts as non-colliding.
func (e *Engine) DetectCollision(a, b *scene.Entity, padding float64) Collision {
	if a.ZoneID != b.ZoneID {
		return Collision{Distance: math.Inf(1)}
	}

	ba, bb := e.Bounds(a), e.Bounds(b)
	ea, eb := ba.Expand(padding/2), bb.Expand(padding/2)

	dx := ba.CenterX() - bb.CenterX()
	dy := ba.CenterY() - bb.CenterY()
	dist := math.Hypot(dx, dy)

	if !ea.overlaps(eb) {
		return Collision{Distance: dist}
	}

	return Collision{
		Colliding: true,
		OverlapX:  overlap(ea.X, ea.Right(), eb.X, eb.Right()),
		OverlapY:  overlap(ea.Y, ea.Bottom(), eb.Y, eb.Bottom()),
		Distance:  dist,
	}
}

// overlap returns the penetration depth of two overlapping 1D intervals.
func overlap(aLo, aHi, bLo, bHi float64) float64 {
	return math.Min(aHi-bLo, bHi-aLo)
}
