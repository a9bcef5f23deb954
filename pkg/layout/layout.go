// Package layout implements the canvas-level passes built on top of the
// geometry engine: the grid arrange pass that gives a scene an initial
// non-overlapping arrangement, and the drag step that displaces neighbors
// while one entity is being moved.
//
// The engine itself resolves local conflicts only; this package owns the
// policies around it (iteration order, multi-neighbor combination, when
// to write positions back).
package layout

import (
	"slices"

	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
)

// =============================================================================
// Grid Arrange - Initial Bin-Packing Pass
// =============================================================================

const (
	// DefaultCanvasWidth bounds grid columns for zoneless entities.
	DefaultCanvasWidth = 1920.0

	// DefaultGridGap is the spacing between grid cells.
	DefaultGridGap = 40.0
)

// ArrangeOptions configures the grid arrange pass.
type ArrangeOptions struct {
	// CanvasWidth bounds grid columns for entities without a zone.
	// Zero means DefaultCanvasWidth.
	CanvasWidth float64

	// Gap is the spacing between grid cells. Zero means DefaultGridGap.
	Gap float64
}

// SetDefaults fills zero-valued fields.
func (o *ArrangeOptions) SetDefaults() {
	if o.CanvasWidth == 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.Gap == 0 {
		o.Gap = DefaultGridGap
	}
}

// Arrange assigns every non-zone entity a collision-free position on a
// row-major grid, zone by zone. Entities are processed in ID order so the
// pass is deterministic; each grid cell is only a proposal, run through
// the placement search against the entities already settled.
//
// Positions are written back into the scene. Zone markers and the zones
// themselves are never moved.
func Arrange(eng *geometry.Engine, sc *scene.Scene, opts ArrangeOptions) {
	opts.SetDefaults()

	for _, zoneID := range zoneGroups(sc) {
		arrangeGroup(eng, sc, zoneID, opts)
	}
}

// zoneGroups returns every zone ID present among entities, the zoneless
// group first, each zone in ID order after.
func zoneGroups(sc *scene.Scene) []string {
	seen := map[string]bool{}
	var ids []string
	for i := range sc.Entities {
		id := sc.Entities[i].ZoneID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return append([]string{""}, ids...)
}

func arrangeGroup(eng *geometry.Engine, sc *scene.Scene, zoneID string, opts ArrangeOptions) {
	var members []*scene.Entity
	for i := range sc.Entities {
		e := &sc.Entities[i]
		if e.ZoneID != zoneID || e.IsZone() {
			continue
		}
		members = append(members, e)
	}
	if len(members) == 0 {
		return
	}
	slices.SortFunc(members, func(a, b *scene.Entity) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	// Uniform cells sized to the group's largest footprint.
	var cellW, cellH float64
	for _, e := range members {
		b := eng.Bounds(e)
		cellW = max(cellW, b.Width)
		cellH = max(cellH, b.Height)
	}

	zone := sc.Zone(zoneID)
	origin := eng.Params().EdgePadding
	width := opts.CanvasWidth
	if zone != nil {
		width = zone.Size.Width
	}

	cols := int((width - 2*origin + opts.Gap) / (cellW + opts.Gap))
	if cols < 1 {
		cols = 1
	}

	for i, e := range members {
		col, row := i%cols, i/cols
		preferred := scene.Position{
			X: origin + float64(col)*(cellW+opts.Gap),
			Y: origin + float64(row)*(cellH+opts.Gap),
		}
		e.Position = eng.FindPlacement(e, sc.Entities, preferred, zone)
	}
}
