package geometry

import (
	"testing"

	"github.com/driftboard/driftboard/pkg/scene"
)

func TestFindPlacementNoPeers(t *testing.T) {
	eng := New(nil, DefaultParams())
	e := at("e", 0, 0)

	t.Run("Unconstrained", func(t *testing.T) {
		// With no peers and no zone, any position is already placed.
		want := scene.Position{X: 123.4, Y: -56.7}
		got := eng.FindPlacement(&e, nil, want, nil)
		if got != want {
			t.Errorf("position = %+v, want %+v", got, want)
		}
	})

	t.Run("ClampedToZone", func(t *testing.T) {
		zone := &scene.Zone{ID: "z", Size: scene.Size{Width: 1200, Height: 1000}}
		ze := e
		ze.ZoneID = "z"

		// (-40, 2000) is out of bounds on both axes; no peers, so the
		// result is the clamped preferred position.
		got := eng.FindPlacement(&ze, nil, scene.Position{X: -40, Y: 2000}, zone)
		want := scene.Position{X: 50, Y: 800} // 1000 − 50 − 150
		if got != want {
			t.Errorf("position = %+v, want %+v", got, want)
		}
	})
}

func TestFindPlacementDirectHit(t *testing.T) {
	eng := New(nil, DefaultParams())

	// The preferred spot is clear of the single distant peer: the cheap
	// early return must hand it back untouched.
	e := at("e", 0, 0)
	peer := at("p", 900, 900)

	want := scene.Position{X: 100, Y: 100}
	got := eng.FindPlacement(&e, []scene.Entity{peer}, want, nil)
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestFindPlacementAvoidsPeer(t *testing.T) {
	eng := New(nil, DefaultParams())

	zone := &scene.Zone{ID: "z", Size: scene.Size{Width: 1200, Height: 1000}}
	e := at("e", 0, 0)
	e.ZoneID = "z"
	peer := at("p", 0, 0)
	peer.ZoneID = "z"

	got := eng.FindPlacement(&e, []scene.Entity{peer}, scene.Position{X: 0, Y: 0}, zone)

	// The result must sit inside the padded zone...
	if got.X < 50 || got.Y < 50 || got.X+200 > 1150 || got.Y+150 > 950 {
		t.Errorf("position %+v outside [50,1150]×[50,950] for a 200×150 entity", got)
	}

	// ...and clear of the peer's padded footprint.
	placed := e
	placed.Position = got
	pad := eng.Padding(&placed, &peer)
	if c := eng.DetectCollision(&placed, &peer, pad); c.Colliding {
		t.Errorf("position %+v still collides with peer (overlap %v×%v)", got, c.OverlapX, c.OverlapY)
	}
}

func TestFindPlacementIgnoresOtherZones(t *testing.T) {
	eng := New(nil, DefaultParams())

	// A peer at the same coordinates but in a different zone must not
	// constrain the placement.
	e := at("e", 0, 0)
	peer := at("p", 0, 0)
	peer.ZoneID = "elsewhere"

	want := scene.Position{X: 0, Y: 0}
	got := eng.FindPlacement(&e, []scene.Entity{peer}, want, nil)
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestFindPlacementIgnoresZoneMarkers(t *testing.T) {
	eng := New(nil, DefaultParams())

	e := at("e", 0, 0)
	marker := at("m", 0, 0)
	marker.Type = scene.TypeZone

	want := scene.Position{X: 0, Y: 0}
	got := eng.FindPlacement(&e, []scene.Entity{marker}, want, nil)
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestFindPlacementExhaustedFallback(t *testing.T) {
	// A zone too small to hold the entity inside its padded bounds makes
	// every candidate fail; the search must still terminate and return
	// the clamped preferred position rather than an error.
	eng := New(nil, DefaultParams())

	zone := &scene.Zone{ID: "z", Size: scene.Size{Width: 120, Height: 100}}
	e := at("e", 0, 0)
	e.ZoneID = "z"

	got := eng.FindPlacement(&e, nil, scene.Position{X: 500, Y: 500}, zone)
	// Wider than the padded zone: pinned to the leading edge.
	want := scene.Position{X: 50, Y: 50}
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestFindPlacementSelfIsNotAPeer(t *testing.T) {
	eng := New(nil, DefaultParams())

	// Relocating an entity that is itself in the population must not
	// collide with its own old position.
	e := at("e", 300, 300)
	all := []scene.Entity{e, at("far", 2000, 2000)}

	want := scene.Position{X: 310, Y: 290}
	got := eng.FindPlacement(&e, all, want, nil)
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}
