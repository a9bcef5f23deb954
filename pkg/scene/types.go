package scene

import (
	"github.com/google/uuid"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Entity types. Each type selects a default footprint when an entity has no
// explicit size (see the sizes table in pkg/geometry).
const (
	TypeNote    = "note"
	TypeImage   = "image"
	TypeTodo    = "todo"
	TypeLink    = "link"
	TypeTimer   = "timer"
	TypeDrawing = "drawing"
	TypeFrame   = "frame"
	TypeZone    = "zone"
)

// =============================================================================
// Geometry Primitives
// =============================================================================

// Position is a top-left corner in canvas coordinates.
// All entities sharing a zone use the same coordinate space.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is a rectangular footprint in canvas units.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Valid reports whether both dimensions are strictly positive.
// A size with a zero or negative dimension is treated as absent, never
// mixed with a type default (all-or-nothing contract).
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// =============================================================================
// Entity - Positioned Canvas Object
// =============================================================================

// Entity is any positioned, sized rectangular object placed on the canvas.
//
// Size is optional: nil (or invalid) means the type's default footprint
// applies. ZoneID is optional: the empty string means the entity sits on
// the unconstrained canvas. Entities with different ZoneID values never
// interact geometrically, including one set and one unset.
type Entity struct {
	ID       string         `json:"id" bson:"id"`
	Type     string         `json:"type" bson:"type"`
	Position Position       `json:"position" bson:"position"`
	Size     *Size          `json:"size,omitempty" bson:"size,omitempty"`
	ZoneID   string         `json:"zone_id,omitempty" bson:"zone_id,omitempty"`
	Label    string         `json:"label,omitempty" bson:"label,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// NewEntity creates an entity of the given type with a fresh UUID.
// Position, size, and zone are left for the caller (or the placement
// engine) to fill in.
func NewEntity(typ string) Entity {
	return Entity{
		ID:   uuid.NewString(),
		Type: typ,
	}
}

// IsZone returns true if this entity represents a zone marker.
// Zone-type entities are excluded from placement peer sets.
func (e *Entity) IsZone() bool { return e.Type == TypeZone }

// DisplayLabel returns the label if set, otherwise the ID.
func (e *Entity) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// =============================================================================
// Zone - Optional Grouping Rectangle
// =============================================================================

// Zone is an optional grouping rectangle. Its only geometric role is
// scoping which entities can collide and bounding the placement search's
// clamp fallback; the engine never mutates it.
type Zone struct {
	ID       string   `json:"id" bson:"id"`
	Label    string   `json:"label,omitempty" bson:"label,omitempty"`
	Position Position `json:"position" bson:"position"`
	Size     Size     `json:"size" bson:"size"`
}

// NewZone creates a zone with a fresh UUID and the given size.
func NewZone(size Size) Zone {
	return Zone{
		ID:   uuid.NewString(),
		Size: size,
	}
}
