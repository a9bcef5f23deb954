package render

import (
	"strings"
	"testing"

	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
)

func testScene() *scene.Scene {
	sc := scene.New("test")
	sc.Zones = []scene.Zone{
		{ID: "z1", Label: "Ideas", Position: scene.Position{X: 0, Y: 0}, Size: scene.Size{Width: 800, Height: 600}},
	}
	sc.Entities = []scene.Entity{
		{ID: "a", Type: scene.TypeNote, Label: "alpha", Position: scene.Position{X: 100, Y: 100}, ZoneID: "z1"},
		{ID: "b", Type: scene.TypeImage, Label: "beta", Position: scene.Position{X: 120, Y: 110}, ZoneID: "z1"},
		{ID: "c", Type: scene.TypeTodo, Label: "gamma", Position: scene.Position{X: 600, Y: 400}, ZoneID: "z1"},
	}
	return sc
}

func TestRenderSVG(t *testing.T) {
	eng := geometry.New(nil, geometry.DefaultParams())

	tests := []struct {
		name  string
		sc    *scene.Scene
		opts  []SVGOption
		check func(t *testing.T, svg string)
	}{
		{
			name: "Basic",
			sc:   testScene(),
			check: func(t *testing.T, svg string) {
				for _, want := range []string{
					`<svg xmlns="http://www.w3.org/2000/svg"`,
					`id="entity-a"`, `id="entity-b"`, `id="entity-c"`,
					">alpha</text>", ">Ideas</text>",
					"stroke-dasharray", // zone outline
				} {
					if !strings.Contains(svg, want) {
						t.Errorf("svg missing %q", want)
					}
				}
			},
		},
		{
			name: "Collisions",
			sc:   testScene(),
			opts: []SVGOption{WithCollisions()},
			check: func(t *testing.T, svg string) {
				// a and b overlap; both get the red outline and a
				// connecting line. c stays untouched.
				if got := strings.Count(svg, `stroke="#dc2626"`); got != 3 {
					t.Errorf("red strokes = %d, want 2 outlines + 1 line", got)
				}
				if !strings.Contains(svg, "<line ") {
					t.Error("svg missing collision line")
				}
			},
		},
		{
			name: "WithoutLabels",
			sc:   testScene(),
			opts: []SVGOption{WithoutLabels()},
			check: func(t *testing.T, svg string) {
				if strings.Contains(svg, "<text") {
					t.Error("svg contains labels despite WithoutLabels")
				}
			},
		},
		{
			name: "Empty",
			sc:   scene.New("empty"),
			check: func(t *testing.T, svg string) {
				if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
					t.Error("empty scene should still produce a well-formed document")
				}
			},
		},
		{
			name: "EscapesLabels",
			sc: &scene.Scene{
				ID: "s", Entities: []scene.Entity{
					{ID: "x", Type: scene.TypeNote, Label: `<b>&"bold"`, Position: scene.Position{}},
				},
			},
			check: func(t *testing.T, svg string) {
				if !strings.Contains(svg, "&lt;b&gt;&amp;&quot;bold&quot;") {
					t.Error("label not escaped")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(eng, tt.sc, tt.opts...))
			tt.check(t, svg)
		})
	}
}

func TestRenderSVGSkipsZoneMarkers(t *testing.T) {
	eng := geometry.New(nil, geometry.DefaultParams())
	sc := scene.New("markers")
	sc.Entities = []scene.Entity{
		{ID: "marker", Type: scene.TypeZone, Position: scene.Position{}},
		{ID: "a", Type: scene.TypeNote, Position: scene.Position{X: 10, Y: 10}},
	}
	svg := string(RenderSVG(eng, sc))
	if strings.Contains(svg, `id="entity-marker"`) {
		t.Error("zone marker rendered as entity")
	}
	if !strings.Contains(svg, `id="entity-a"`) {
		t.Error("regular entity missing")
	}
}
