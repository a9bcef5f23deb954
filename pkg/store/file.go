package store

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/scene"
)

// FileStore keeps each scene as <dir>/<id>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store in the given directory, creating it
// if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Put saves a scene, overwriting any scene with the same ID.
func (s *FileStore) Put(ctx context.Context, sc *scene.Scene) error {
	if sc.ID == "" {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no id")
	}
	if err := scene.WriteSceneFile(sc, s.path(sc.ID)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save scene %s", sc.ID)
	}
	return nil
}

// Get loads a scene. Returns ErrNotFound when absent.
func (s *FileStore) Get(ctx context.Context, id string) (*scene.Scene, error) {
	sc, err := scene.ReadSceneFile(s.path(id))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load scene %s", id)
	}
	return sc, nil
}

// List returns identity info for every stored scene, sorted by ID.
func (s *FileStore) List(ctx context.Context) ([]SceneInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list store dir")
	}

	var infos []SceneInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		sc, err := scene.ReadSceneFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			// Unreadable document: skip rather than fail the listing.
			continue
		}
		infos = append(infos, SceneInfo{ID: id, Name: sc.Name})
	}
	slices.SortFunc(infos, func(a, b SceneInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos, nil
}

// Delete removes a scene. Returns ErrNotFound when absent.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete scene %s", id)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// path converts a scene ID to a file path. IDs are UUIDs in practice;
// filepath.Base strips any traversal attempt from externally-supplied IDs.
func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
