package geometry

import (
	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Size Resolution - Type Tag → Default Footprint
// =============================================================================

// DefaultSize is the footprint used for unknown entity types.
var DefaultSize = scene.Size{Width: 200, Height: 150}

// SizeTable maps entity type tags to default footprints. It is an explicit
// finite mapping: callers extend it with new types by adding entries, and
// every lookup miss resolves to DefaultSize.
type SizeTable map[string]scene.Size

// DefaultSizes returns the built-in footprint table for the standard
// entity types. The returned table is a fresh copy callers may extend.
func DefaultSizes() SizeTable {
	return SizeTable{
		scene.TypeNote:    {Width: 200, Height: 150},
		scene.TypeImage:   {Width: 250, Height: 200},
		scene.TypeTodo:    {Width: 220, Height: 180},
		scene.TypeLink:    {Width: 200, Height: 100},
		scene.TypeTimer:   {Width: 180, Height: 120},
		scene.TypeDrawing: {Width: 300, Height: 250},
		scene.TypeFrame:   {Width: 350, Height: 300},
		scene.TypeZone:    {Width: 400, Height: 300},
	}
}

// Resolve returns the default footprint for a type tag.
// Unknown types (and a nil table) resolve to DefaultSize. Pure and total.
func (t SizeTable) Resolve(typ string) scene.Size {
	if s, ok := t[typ]; ok && s.Valid() {
		return s
	}
	return DefaultSize
}
