// Package store persists scenes. Two backends exist: a file store that
// keeps each scene as a JSON document in a directory (CLI, single-user),
// and a MongoDB store for server deployments. Both serve the same small
// CRUD surface; the engine itself never touches persistence.
package store

import (
	"context"

	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/scene"
)

// ErrNotFound is returned when a requested scene does not exist.
// It is a structured error carrying ErrCodeSceneNotFound.
var ErrNotFound = errors.New(errors.ErrCodeSceneNotFound, "scene not found")

// SceneInfo is a listing entry: identity without the entity payload.
type SceneInfo struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// Store persists scenes by ID.
type Store interface {
	// Put saves a scene, overwriting any scene with the same ID.
	Put(ctx context.Context, sc *scene.Scene) error

	// Get loads a scene. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*scene.Scene, error)

	// List returns identity info for every stored scene.
	List(ctx context.Context) ([]SceneInfo, error)

	// Delete removes a scene. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
