package geometry

import (
	"math"

	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Placement Search - Direct Check → Spiral → Clamp
// =============================================================================

// FindPlacement returns the collision-free position nearest the preferred
// one for an entity, considering every same-zone peer in all. The zone,
// when non-nil, bounds candidates: the entity's box must stay within
// [EdgePadding, zone size − EdgePadding] on both axes.
//
// The preferred position wins outright when it is in bounds and clear of
// every peer; this is the common case and a cheap early return. Otherwise
// candidates are probed on an expanding spiral: 8 angularly-spaced points
// per radius, each ring rotated slightly so rings do not align on the
// same rays, stepping by a tenth of the entity's larger dimension up to
// the hard radius cap.
//
// The search always terminates and always returns some position. When the
// spiral exhausts its budget, the preferred position is clamped into the
// zone's padded bounds (or returned unchanged without a zone), accepting
// a possible residual collision rather than blocking the caller. Callers
// that must know re-run DetectCollision on the result.
func (e *Engine) FindPlacement(ent *scene.Entity, all []scene.Entity, preferred scene.Position, zone *scene.Zone) scene.Position {
	peers := placementPeers(ent, all)

	if e.placeable(ent, peers, preferred, zone) {
		return preferred
	}

	// No peers means the preferred spot only failed the bounds check;
	// the nearest valid position is the clamped one, no search needed.
	if len(peers) == 0 {
		return e.clampToZone(ent, preferred, zone)
	}

	b := e.Bounds(ent)
	step := math.Max(b.Width, b.Height) * e.params.SpiralStepFraction
	dirs := e.params.SpiralDirections

	for radius := step; radius <= e.params.SpiralMaxRadius; radius += step {
		// Rotate each ring so successive rings sample different rays.
		offset := radius * e.params.SpiralTwist
		for i := 0; i < dirs; i++ {
			angle := offset + 2*math.Pi*float64(i)/float64(dirs)
			cand := scene.Position{
				X: preferred.X + math.Cos(angle)*radius,
				Y: preferred.Y + math.Sin(angle)*radius,
			}
			if e.placeable(ent, peers, cand, zone) {
				return cand
			}
		}
	}

	return e.clampToZone(ent, preferred, zone)
}

// placementPeers filters the population to entities that constrain a
// placement: same zone, not the entity itself, not zone markers.
func placementPeers(ent *scene.Entity, all []scene.Entity) []*scene.Entity {
	var peers []*scene.Entity
	for i := range all {
		p := &all[i]
		if p.ID == ent.ID || p.ZoneID != ent.ZoneID || p.IsZone() {
			continue
		}
		peers = append(peers, p)
	}
	return peers
}

// placeable reports whether the candidate position is inside the zone's
// padded bounds and collision-free against every peer.
func (e *Engine) placeable(ent *scene.Entity, peers []*scene.Entity, pos scene.Position, zone *scene.Zone) bool {
	cand := *ent
	cand.Position = pos

	if !e.inBounds(&cand, zone) {
		return false
	}
	for _, p := range peers {
		pad := e.Padding(&cand, p)
		if e.DetectCollision(&cand, p, pad).Colliding {
			return false
		}
	}
	return true
}

// inBounds checks the candidate's box against the zone's padded interior.
// No zone means the whole canvas is in bounds.
func (e *Engine) inBounds(ent *scene.Entity, zone *scene.Zone) bool {
	if zone == nil {
		return true
	}
	b := e.Bounds(ent)
	pad := e.params.EdgePadding
	return b.X >= pad && b.Y >= pad &&
		b.Right() <= zone.Size.Width-pad &&
		b.Bottom() <= zone.Size.Height-pad
}

// clampToZone pushes the preferred position into the zone's padded bounds
// as a best-effort fallback. Without a zone the preferred position comes
// back unchanged.
func (e *Engine) clampToZone(ent *scene.Entity, pos scene.Position, zone *scene.Zone) scene.Position {
	if zone == nil {
		return pos
	}
	b := e.Bounds(ent)
	pad := e.params.EdgePadding

	maxX := zone.Size.Width - pad - b.Width
	maxY := zone.Size.Height - pad - b.Height
	// Entities wider than the padded zone pin to the leading edge.
	if maxX < pad {
		maxX = pad
	}
	if maxY < pad {
		maxY = pad
	}
	return scene.Position{
		X: clamp(pos.X, pad, maxX),
		Y: clamp(pos.Y, pad, maxY),
	}
}
