// Package scene defines the canonical serialization format for canvas
// scenes: the entities placed on the canvas and the zones grouping them.
//
// The format is human-readable JSON designed for round-trip fidelity:
// import → arrange → export → re-import produces identical results. The
// same structs carry BSON tags for MongoDB persistence (pkg/store).
//
// Geometry lives elsewhere: pkg/geometry consumes these types as read-only
// inputs and proposes position updates; this package only holds data.
package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// =============================================================================
// Scene - Canvas Document
// =============================================================================

// Scene is a complete canvas document: every entity and zone on one board.
type Scene struct {
	ID       string   `json:"id" bson:"_id"`
	Name     string   `json:"name,omitempty" bson:"name,omitempty"`
	Entities []Entity `json:"entities" bson:"entities"`
	Zones    []Zone   `json:"zones,omitempty" bson:"zones,omitempty"`
}

// New creates an empty scene with a fresh UUID.
func New(name string) *Scene {
	return &Scene{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// Entity returns the entity with the given ID, or nil if absent.
func (s *Scene) Entity(id string) *Entity {
	for i := range s.Entities {
		if s.Entities[i].ID == id {
			return &s.Entities[i]
		}
	}
	return nil
}

// Zone returns the zone with the given ID, or nil if absent.
// The empty ID always returns nil (unconstrained canvas).
func (s *Scene) Zone(id string) *Zone {
	if id == "" {
		return nil
	}
	for i := range s.Zones {
		if s.Zones[i].ID == id {
			return &s.Zones[i]
		}
	}
	return nil
}

// EntitiesInZone returns pointers to all entities with the given zone ID.
// Pass the empty string for entities on the unconstrained canvas.
func (s *Scene) EntitiesInZone(zoneID string) []*Entity {
	var out []*Entity
	for i := range s.Entities {
		if s.Entities[i].ZoneID == zoneID {
			out = append(out, &s.Entities[i])
		}
	}
	return out
}

// EntityCount returns the number of entities in the scene.
func (s *Scene) EntityCount() int { return len(s.Entities) }

// ZoneCount returns the number of zones in the scene.
func (s *Scene) ZoneCount() int { return len(s.Zones) }

// =============================================================================
// Serialization API
// =============================================================================

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s *Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
// Validates that entities carry the required identity fields.
func UnmarshalScene(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	for i := range s.Entities {
		if s.Entities[i].ID == "" {
			return nil, fmt.Errorf("entity %d has no id", i)
		}
	}
	return &s, nil
}

// ReadScene reads a Scene from r.
func ReadScene(r io.Reader) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalScene(data)
}

// WriteScene writes a Scene as JSON to w.
func WriteScene(s *Scene, w io.Writer) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s *Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
