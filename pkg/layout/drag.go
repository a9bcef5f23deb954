package layout

import (
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Drag Step - Per-Frame Neighbor Displacement
// =============================================================================

// DragStep computes one frame of repulsion while the given entity is
// being moved: the force it exerts on every other same-zone entity, keyed
// by neighbor ID. Neighbors outside the repulsion zone are omitted.
//
// The engine leaves the multi-neighbor combination policy to its callers;
// the policy here is to divide each neighbor's displacement by the number
// of actively repelled neighbors, so dragging into a dense cluster
// spreads the push instead of compounding it.
//
// The scene is not mutated; use Apply for that.
func DragStep(eng *geometry.Engine, sc *scene.Scene, draggedID string) map[string]geometry.Force {
	dragged := sc.Entity(draggedID)
	if dragged == nil {
		return nil
	}

	forces := map[string]geometry.Force{}
	for i := range sc.Entities {
		other := &sc.Entities[i]
		if other.ID == draggedID || other.IsZone() {
			continue
		}
		if f := eng.Repulsion(dragged, other); !f.IsZero() {
			forces[other.ID] = f
		}
	}

	if n := float64(len(forces)); n > 1 {
		for id, f := range forces {
			f.DX /= n
			f.DY /= n
			forces[id] = f
		}
	}
	return forces
}

// Apply adds the computed displacements to the matching entities'
// positions. Unknown IDs are ignored.
func Apply(sc *scene.Scene, forces map[string]geometry.Force) {
	for id, f := range forces {
		if e := sc.Entity(id); e != nil {
			e.Position.X += f.DX
			e.Position.Y += f.DY
		}
	}
}
