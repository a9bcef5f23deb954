package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/driftboard/driftboard/pkg/cache"
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
	"github.com/driftboard/driftboard/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { st.Close(context.Background()) })

	logger := log.New(io.Discard)
	eng := geometry.New(nil, geometry.DefaultParams())
	return New(logger, eng, st, cache.NewNullCache())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func apiScene() *scene.Scene {
	sc := scene.New("board")
	sc.Zones = []scene.Zone{
		{ID: "z1", Position: scene.Position{X: 0, Y: 0}, Size: scene.Size{Width: 1200, Height: 1000}},
	}
	sc.Entities = []scene.Entity{
		{ID: "a", Type: scene.TypeNote, Position: scene.Position{X: 100, Y: 100}, ZoneID: "z1"},
		{ID: "b", Type: scene.TypeNote, Position: scene.Position{X: 120, Y: 110}, ZoneID: "z1"},
	}
	return sc
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPlacement(t *testing.T) {
	s := newTestServer(t)

	t.Run("ResolvesCollision", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/placement", PlacementRequest{
			Scene:     apiScene(),
			EntityID:  "b",
			Preferred: scene.Position{X: 120, Y: 110},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		var resp PlacementResponse
		decodeInto(t, rec, &resp)
		// The preferred spot overlaps entity a, so the search must
		// move b somewhere else.
		if resp.Position == (scene.Position{X: 120, Y: 110}) {
			t.Error("placement kept the colliding preferred position")
		}
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/placement", PlacementRequest{
			Scene:    apiScene(),
			EntityID: "nope",
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("MissingScene", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/v1/placement", PlacementRequest{EntityID: "a"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/placement", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestRepulsion(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/v1/repulsion", RepulsionRequest{
		Scene:     apiScene(),
		DraggedID: "a",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp RepulsionResponse
	decodeInto(t, rec, &resp)
	f, ok := resp.Forces["b"]
	if !ok {
		t.Fatal("no force on overlapping neighbor")
	}
	if f.DX <= 0 || f.DY <= 0 {
		t.Errorf("force = %+v, want push away from a", f)
	}
}

func TestArrange(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/v1/arrange", ArrangeRequest{Scene: apiScene()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp ArrangeResponse
	decodeInto(t, rec, &resp)
	a, b := resp.Scene.Entity("a"), resp.Scene.Entity("b")
	if a == nil || b == nil {
		t.Fatal("arranged scene lost entities")
	}
	if a.Position == b.Position {
		t.Error("arrange left both entities at the same position")
	}
}

func TestSceneCRUD(t *testing.T) {
	s := newTestServer(t)
	sc := apiScene()

	t.Run("Put", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPut, "/v1/scenes/"+sc.ID, sc)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
	})

	t.Run("Get", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/v1/scenes/"+sc.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got scene.Scene
		decodeInto(t, rec, &got)
		if got.ID != sc.ID || got.EntityCount() != 2 {
			t.Errorf("scene = %+v, want id %s with 2 entities", got, sc.ID)
		}
	})

	t.Run("List", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/v1/scenes/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var infos []store.SceneInfo
		decodeInto(t, rec, &infos)
		if len(infos) != 1 || infos[0].ID != sc.ID {
			t.Errorf("list = %+v, want one entry for %s", infos, sc.ID)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/v1/scenes/nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodDelete, "/v1/scenes/"+sc.ID, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		rec = doJSON(t, s, http.MethodDelete, "/v1/scenes/"+sc.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404 on second delete", rec.Code)
		}
	})
}

func TestRenderScene(t *testing.T) {
	s := newTestServer(t)
	sc := apiScene()
	if rec := doJSON(t, s, http.MethodPut, "/v1/scenes/"+sc.ID, sc); rec.Code != http.StatusOK {
		t.Fatalf("put: status = %d", rec.Code)
	}

	path := fmt.Sprintf("/v1/scenes/%s/render.svg", sc.ID)
	rec := doJSON(t, s, http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content-type = %s, want image/svg+xml", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("body is not SVG")
	}

	t.Run("Missing", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/v1/scenes/nope/render.svg", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
