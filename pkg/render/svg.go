package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
)

// canvasMargin is the whitespace kept around the drawn content.
const canvasMargin = 40.0

// typeFill maps entity types to their fill colors. Unknown types fall
// back to defaultFill.
var typeFill = map[string]string{
	scene.TypeNote:    "#fde68a",
	scene.TypeImage:   "#bfdbfe",
	scene.TypeTodo:    "#bbf7d0",
	scene.TypeLink:    "#ddd6fe",
	scene.TypeTimer:   "#fecaca",
	scene.TypeDrawing: "#fbcfe8",
	scene.TypeFrame:   "#e5e7eb",
}

const (
	defaultFill    = "#f3f4f6"
	entityStroke   = "#374151"
	collisionColor = "#dc2626"
	zoneStroke     = "#9ca3af"
	labelColor     = "#111827"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	showCollisions bool
	hideLabels     bool
}

// WithCollisions outlines colliding entities in red and draws a line
// between the centers of each colliding pair.
func WithCollisions() SVGOption { return func(r *svgRenderer) { r.showCollisions = true } }

// WithoutLabels suppresses entity and zone labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.hideLabels = true } }

// RenderSVG draws a scene as a standalone SVG document. The canvas is
// sized to the scene's content plus a margin; entity footprints come
// from the engine's size resolution, so unsized entities are drawn at
// their type defaults.
func RenderSVG(eng *geometry.Engine, sc *scene.Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	entities := drawableEntities(sc)
	minX, minY, maxX, maxY := contentExtents(eng, sc, entities)

	width := maxX - minX + 2*canvasMargin
	height := maxY - minY + 2*canvasMargin
	offX := canvasMargin - minX
	offY := canvasMargin - minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <rect x=\"0\" y=\"0\" width=\"%.1f\" height=\"%.1f\" fill=\"#ffffff\"/>\n", width, height)

	for _, z := range sc.Zones {
		renderZone(&buf, &r, z, offX, offY)
	}

	colliding := map[string]bool{}
	var pairs [][2]scene.Entity
	if r.showCollisions {
		colliding, pairs = collidingPairs(eng, entities)
	}

	for _, e := range entities {
		renderEntity(&buf, &r, eng, e, offX, offY, colliding[e.ID])
	}
	for _, p := range pairs {
		renderCollisionLine(&buf, eng, p[0], p[1], offX, offY)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// drawableEntities returns the scene's entities minus zone markers,
// sorted by ID for a stable document.
func drawableEntities(sc *scene.Scene) []scene.Entity {
	entities := make([]scene.Entity, 0, len(sc.Entities))
	for _, e := range sc.Entities {
		if e.IsZone() {
			continue
		}
		entities = append(entities, e)
	}
	slices.SortFunc(entities, func(a, b scene.Entity) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return entities
}

func contentExtents(eng *geometry.Engine, sc *scene.Scene, entities []scene.Entity) (minX, minY, maxX, maxY float64) {
	first := true
	extend := func(x, y, w, h float64) {
		if first {
			minX, minY, maxX, maxY = x, y, x+w, y+h
			first = false
			return
		}
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x+w)
		maxY = max(maxY, y+h)
	}
	for _, z := range sc.Zones {
		extend(z.Position.X, z.Position.Y, z.Size.Width, z.Size.Height)
	}
	for i := range entities {
		b := eng.Bounds(&entities[i])
		extend(b.X, b.Y, b.Width, b.Height)
	}
	if first {
		// Empty scene: a fixed small canvas.
		return 0, 0, 200, 150
	}
	return minX, minY, maxX, maxY
}

func collidingPairs(eng *geometry.Engine, entities []scene.Entity) (map[string]bool, [][2]scene.Entity) {
	colliding := make(map[string]bool)
	var pairs [][2]scene.Entity
	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			pad := eng.Padding(&entities[i], &entities[j])
			if eng.DetectCollision(&entities[i], &entities[j], pad).Colliding {
				colliding[entities[i].ID] = true
				colliding[entities[j].ID] = true
				pairs = append(pairs, [2]scene.Entity{entities[i], entities[j]})
			}
		}
	}
	return colliding, pairs
}

func renderZone(buf *bytes.Buffer, r *svgRenderer, z scene.Zone, offX, offY float64) {
	fmt.Fprintf(buf, "  <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"none\" stroke=%q stroke-width=\"2\" stroke-dasharray=\"8 4\" rx=\"6\"/>\n",
		z.Position.X+offX, z.Position.Y+offY, z.Size.Width, z.Size.Height, zoneStroke)
	if !r.hideLabels && z.Label != "" {
		fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" font-family=\"sans-serif\" font-size=\"14\" fill=%q>%s</text>\n",
			z.Position.X+offX+8, z.Position.Y+offY+20, zoneStroke, escapeText(z.Label))
	}
}

func renderEntity(buf *bytes.Buffer, r *svgRenderer, eng *geometry.Engine, e scene.Entity, offX, offY float64, colliding bool) {
	b := eng.Bounds(&e)
	fill, ok := typeFill[e.Type]
	if !ok {
		fill = defaultFill
	}
	stroke, strokeWidth := entityStroke, 1.5
	if colliding {
		stroke, strokeWidth = collisionColor, 3.0
	}

	fmt.Fprintf(buf, "  <rect id=\"entity-%s\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=%q stroke=%q stroke-width=\"%.1f\" rx=\"4\"/>\n",
		escapeText(e.ID), b.X+offX, b.Y+offY, b.Width, b.Height, fill, stroke, strokeWidth)

	if !r.hideLabels {
		fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" font-family=\"sans-serif\" font-size=\"13\" text-anchor=\"middle\" fill=%q>%s</text>\n",
			b.CenterX()+offX, b.CenterY()+offY+4, labelColor, escapeText(e.DisplayLabel()))
	}
}

func renderCollisionLine(buf *bytes.Buffer, eng *geometry.Engine, a, b scene.Entity, offX, offY float64) {
	ba, bb := eng.Bounds(&a), eng.Bounds(&b)
	fmt.Fprintf(buf, "  <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=%q stroke-width=\"1.5\" stroke-dasharray=\"4 3\"/>\n",
		ba.CenterX()+offX, ba.CenterY()+offY, bb.CenterX()+offX, bb.CenterY()+offY, collisionColor)
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
