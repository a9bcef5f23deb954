package geometry

import (
	"testing"

	"github.com/driftboard/driftboard/pkg/scene"
)

func TestBounds(t *testing.T) {
	eng := New(nil, DefaultParams())

	tests := []struct {
		name       string
		entity     scene.Entity
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "ExplicitSize",
			entity:     scene.Entity{ID: "a", Type: scene.TypeNote, Size: &scene.Size{Width: 320, Height: 240}},
			wantWidth:  320,
			wantHeight: 240,
		},
		{
			name:       "TypeDefault",
			entity:     scene.Entity{ID: "a", Type: scene.TypeImage},
			wantWidth:  250,
			wantHeight: 200,
		},
		{
			name:       "UnknownTypeFallback",
			entity:     scene.Entity{ID: "a", Type: "hologram"},
			wantWidth:  200,
			wantHeight: 150,
		},
		{
			// A half-specified explicit size must not mix with the type
			// default: the whole override is discarded.
			name:       "MalformedExplicitSize",
			entity:     scene.Entity{ID: "a", Type: scene.TypeImage, Size: &scene.Size{Width: 320}},
			wantWidth:  250,
			wantHeight: 200,
		},
		{
			name:       "NegativeExplicitSize",
			entity:     scene.Entity{ID: "a", Type: scene.TypeNote, Size: &scene.Size{Width: -10, Height: 50}},
			wantWidth:  200,
			wantHeight: 150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := eng.Bounds(&tt.entity)
			if b.Width != tt.wantWidth {
				t.Errorf("width = %v, want %v", b.Width, tt.wantWidth)
			}
			if b.Height != tt.wantHeight {
				t.Errorf("height = %v, want %v", b.Height, tt.wantHeight)
			}
		})
	}
}

func TestBoundsDerivedEdges(t *testing.T) {
	eng := New(nil, DefaultParams())
	e := scene.Entity{
		ID:       "a",
		Type:     scene.TypeNote,
		Position: scene.Position{X: 10, Y: 20},
		Size:     &scene.Size{Width: 100, Height: 60},
	}

	b := eng.Bounds(&e)
	if got := b.Right(); got != 110 {
		t.Errorf("Right() = %v, want 110", got)
	}
	if got := b.Bottom(); got != 80 {
		t.Errorf("Bottom() = %v, want 80", got)
	}
	if got := b.CenterX(); got != 60 {
		t.Errorf("CenterX() = %v, want 60", got)
	}
	if got := b.CenterY(); got != 50 {
		t.Errorf("CenterY() = %v, want 50", got)
	}
}

func TestBoundsExpand(t *testing.T) {
	b := Bounds{X: 100, Y: 100, Width: 200, Height: 150}
	e := b.Expand(25)

	if e.X != 75 || e.Y != 75 {
		t.Errorf("origin = (%v, %v), want (75, 75)", e.X, e.Y)
	}
	if e.Width != 250 || e.Height != 200 {
		t.Errorf("size = %vx%v, want 250x200", e.Width, e.Height)
	}
	// Expansion must not move the center.
	if e.CenterX() != b.CenterX() || e.CenterY() != b.CenterY() {
		t.Errorf("center moved: (%v, %v) → (%v, %v)", b.CenterX(), b.CenterY(), e.CenterX(), e.CenterY())
	}
}

func TestSizeTableResolve(t *testing.T) {
	table := DefaultSizes()
	table["widget"] = scene.Size{Width: 111, Height: 77}

	if got := table.Resolve("widget"); got.Width != 111 || got.Height != 77 {
		t.Errorf("Resolve(widget) = %+v, want 111x77", got)
	}
	if got := table.Resolve("nope"); got != DefaultSize {
		t.Errorf("Resolve(nope) = %+v, want %+v", got, DefaultSize)
	}

	var nilTable SizeTable
	if got := nilTable.Resolve(scene.TypeNote); got != DefaultSize {
		t.Errorf("nil table Resolve = %+v, want %+v", got, DefaultSize)
	}
}
