// Package geometry implements the collision-resolution and placement
// engine behind the canvas: deciding when two entities overlap, how much
// breathing room they need, how a dragged entity pushes its neighbors
// aside, and where a new or displaced entity can land without overlap.
//
// # Architecture
//
// The engine is a stack of small pure computations, leaves first:
//
//  1. Size resolution: type tag → default footprint (sizes.go)
//  2. Bounds: absolute axis-aligned box for one entity (bounds.go)
//  3. Adaptive padding: size-aware separation distance (padding.go)
//  4. Collision detection: padded AABB overlap test (collision.go)
//  5. Repulsion force: smooth displacement vector per frame (repulsion.go)
//  6. Placement search: direct check → spiral → clamp (placement.go)
//
// Every operation is a deterministic function of its explicit inputs.
// The engine holds no entity state: callers own positions and apply the
// deltas and candidate positions it returns. The only internal state is
// a seeded random source used to break the tie when two entities share
// an exact center, guarded for concurrent use.
//
// # Zones
//
// Entities only ever interact with entities carrying the identical zone
// ID (including both being zoneless). Cross-zone pairs always yield "no
// collision" and the zero force; this is the sole grouping invariant.
//
// # Totality
//
// No function in this package fails. Malformed explicit sizes fall back
// to type defaults, cross-zone comparisons return neutral results, and
// an exhausted placement search returns a clamped best-effort position
// rather than an error. Callers that need to detect a residual overlap
// re-run DetectCollision on the chosen position.
//
// # Usage
//
//	eng := geometry.New(nil, geometry.DefaultParams())
//
//	// Per-frame drag loop
//	for i := range others {
//	    f := eng.Repulsion(dragged, &others[i])
//	    others[i].Position.X += f.DX
//	    others[i].Position.Y += f.DY
//	}
//
//	// One-shot placement
//	pos := eng.FindPlacement(&e, sc.Entities, preferred, sc.Zone(e.ZoneID))
package geometry
