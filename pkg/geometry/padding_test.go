package geometry

import (
	"testing"

	"github.com/driftboard/driftboard/pkg/scene"
)

func sized(id string, w, h float64) scene.Entity {
	return scene.Entity{ID: id, Type: scene.TypeNote, Size: &scene.Size{Width: w, Height: h}}
}

func TestPadding(t *testing.T) {
	eng := New(nil, DefaultParams())

	tests := []struct {
		name string
		a, b scene.Entity
		want float64
	}{
		{
			// avg = (200+150+200+150)/4 = 175 → 20 + 17.5 = 37.5
			name: "ReferencePair",
			a:    sized("a", 200, 150),
			b:    sized("b", 200, 150),
			want: 37.5,
		},
		{
			// avg = 1 → 20 + 0.1 = 20.1; with base 20 the minimum never
			// kicks in for positive sizes.
			name: "TinyEntities",
			a:    sized("a", 1, 1),
			b:    sized("b", 1, 1),
			want: 20.1,
		},
		{
			// Huge entities clamp to the maximum.
			name: "ClampsToMax",
			a:    sized("a", 2000, 2000),
			b:    sized("b", 2000, 2000),
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eng.Padding(&tt.a, &tt.b); got != tt.want {
				t.Errorf("Padding = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaddingClampsToMin(t *testing.T) {
	// The default base equals the minimum, so the lower clamp only
	// engages with a reduced base.
	params := DefaultParams()
	params.PaddingBase = 5
	eng := New(nil, params)

	a := sized("a", 1, 1)
	b := sized("b", 1, 1)
	if got := eng.Padding(&a, &b); got != params.PaddingMin {
		t.Errorf("Padding = %v, want clamped to %v", got, params.PaddingMin)
	}
}

func TestPaddingSymmetry(t *testing.T) {
	eng := New(nil, DefaultParams())

	pairs := [][2]scene.Entity{
		{sized("a", 200, 150), sized("b", 400, 300)},
		{sized("a", 10, 10), sized("b", 900, 40)},
		{{ID: "a", Type: scene.TypeTimer}, {ID: "b", Type: scene.TypeFrame}},
		{{ID: "a", Type: "unknown"}, sized("b", 123, 456)},
	}

	for _, pair := range pairs {
		ab := eng.Padding(&pair[0], &pair[1])
		ba := eng.Padding(&pair[1], &pair[0])
		if ab != ba {
			t.Errorf("Padding(%s,%s) = %v but Padding(%s,%s) = %v",
				pair[0].ID, pair[1].ID, ab, pair[1].ID, pair[0].ID, ba)
		}
	}
}

func TestPaddingBounds(t *testing.T) {
	eng := New(nil, DefaultParams())

	// Sweep a range of footprints; every pair must land in [20, 100].
	dims := []float64{1, 20, 150, 200, 500, 1000, 5000}
	for _, wa := range dims {
		for _, wb := range dims {
			a := sized("a", wa, wa/2+1)
			b := sized("b", wb, wb/2+1)
			p := eng.Padding(&a, &b)
			if p < 20 || p > 100 {
				t.Errorf("Padding(%v, %v) = %v, outside [20, 100]", wa, wb, p)
			}
		}
	}
}
