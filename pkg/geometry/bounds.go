package geometry

import (
	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Bounds - Derived Axis-Aligned Box
// =============================================================================

// Bounds is the absolute axis-aligned bounding box of one entity. It is
// always recomputed from the entity and the size table, never cached.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the right edge (X + Width).
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns the bottom edge (Y + Height).
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center.
func (b Bounds) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center.
func (b Bounds) CenterY() float64 { return b.Y + b.Height/2 }

// Expand grows the box uniformly by pad on every side.
// A negative pad shrinks it.
func (b Bounds) Expand(pad float64) Bounds {
	return Bounds{
		X:      b.X - pad,
		Y:      b.Y - pad,
		Width:  b.Width + 2*pad,
		Height: b.Height + 2*pad,
	}
}

// overlaps is the strict-inequality AABB test: boxes that merely touch
// edges do not overlap.
func (b Bounds) overlaps(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Bounds computes the bounding box for an entity.
//
// Width and height resolve in order: the entity's explicit size when both
// dimensions are valid, otherwise the type default. A malformed explicit
// size (one dimension missing or non-positive) falls back entirely to the
// type default rather than mixing partial values; mixing would produce
// degenerate zero-sized boxes. Always succeeds.
func (e *Engine) Bounds(ent *scene.Entity) Bounds {
	size := e.sizes.Resolve(ent.Type)
	if ent.Size != nil && ent.Size.Valid() {
		size = *ent.Size
	}
	return Bounds{
		X:      ent.Position.X,
		Y:      ent.Position.Y,
		Width:  size.Width,
		Height: size.Height,
	}
}
