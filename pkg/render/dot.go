package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
)

// DOTOptions configures overlap diagram generation.
type DOTOptions struct {
	// Detailed includes positions and overlap magnitudes in labels.
	// When false, only entity labels are shown.
	Detailed bool
}

// ToDOT converts a scene's collision structure to Graphviz DOT format:
// one node per entity, one edge per colliding pair under the adaptive
// padding. Isolated entities still appear as nodes, so the diagram
// shows the whole scene.
//
// The resulting DOT string can be rendered with [RenderDOT].
func ToDOT(eng *geometry.Engine, sc *scene.Scene, opts DOTOptions) string {
	entities := drawableEntities(sc)

	var buf bytes.Buffer
	buf.WriteString("graph overlaps {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#dc2626\", penwidth=2];\n")
	buf.WriteString("\n")

	for i := range entities {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", entities[i].ID, fmtNodeLabel(eng, &entities[i], opts.Detailed))
	}

	buf.WriteString("\n")
	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			pad := eng.Padding(&entities[i], &entities[j])
			col := eng.DetectCollision(&entities[i], &entities[j], pad)
			if !col.Colliding {
				continue
			}
			if opts.Detailed {
				fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n",
					entities[i].ID, entities[j].ID,
					fmt.Sprintf("%.0fx%.0f", col.OverlapX, col.OverlapY))
			} else {
				fmt.Fprintf(&buf, "  %q -- %q;\n", entities[i].ID, entities[j].ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeLabel(eng *geometry.Engine, e *scene.Entity, detailed bool) string {
	label := e.DisplayLabel()
	if !detailed {
		return label
	}
	b := eng.Bounds(e)
	return fmt.Sprintf("%s\n(%.0f, %.0f) %.0fx%.0f", label, b.X, b.Y, b.Width, b.Height)
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header so the viewBox
// starts at the origin and the element carries explicit dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
