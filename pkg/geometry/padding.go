package geometry

import (
	"github.com/driftboard/driftboard/pkg/scene"
)

// Padding derives the separation distance for a pair of entities from
// their average footprint: base + avg*scale, clamped to [min, max].
//
// Larger entities get proportionally more breathing room, but padding
// never collapses below the usable minimum nor balloons for huge
// entities. Symmetric in its arguments.
func (e *Engine) Padding(a, b *scene.Entity) float64 {
	ba, bb := e.Bounds(a), e.Bounds(b)
	avg := (ba.Width + ba.Height + bb.Width + bb.Height) / 4
	return clamp(e.params.PaddingBase+avg*e.params.PaddingScale, e.params.PaddingMin, e.params.PaddingMax)
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
