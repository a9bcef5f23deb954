package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/driftboard/driftboard/pkg/cache"
	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/layout"
	"github.com/driftboard/driftboard/pkg/render"
	"github.com/driftboard/driftboard/pkg/scene"
	"github.com/driftboard/driftboard/pkg/store"
)

// =============================================================================
// Engine Endpoints
// =============================================================================

// PlacementRequest asks for a collision-free position for one entity
// within an inline scene.
type PlacementRequest struct {
	Scene     *scene.Scene   `json:"scene"`
	EntityID  string         `json:"entity_id"`
	Preferred scene.Position `json:"preferred"`
}

// PlacementResponse carries the resolved position.
type PlacementResponse struct {
	Position scene.Position `json:"position"`
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var req PlacementRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Scene == nil {
		s.respondError(w, errors.New(errors.ErrCodeInvalidScene, "request has no scene"))
		return
	}
	ent := req.Scene.Entity(req.EntityID)
	if ent == nil {
		s.respondError(w, errors.New(errors.ErrCodeEntityNotFound, "entity %s not in scene", req.EntityID))
		return
	}

	pos := s.engine.FindPlacement(ent, req.Scene.Entities, req.Preferred, req.Scene.Zone(ent.ZoneID))
	s.respondJSON(w, http.StatusOK, PlacementResponse{Position: pos})
}

// RepulsionRequest asks for one frame of drag repulsion forces.
type RepulsionRequest struct {
	Scene     *scene.Scene `json:"scene"`
	DraggedID string       `json:"dragged_id"`
}

// RepulsionResponse carries the per-neighbor displacement forces.
type RepulsionResponse struct {
	Forces map[string]geometry.Force `json:"forces"`
}

func (s *Server) handleRepulsion(w http.ResponseWriter, r *http.Request) {
	var req RepulsionRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Scene == nil {
		s.respondError(w, errors.New(errors.ErrCodeInvalidScene, "request has no scene"))
		return
	}
	if req.Scene.Entity(req.DraggedID) == nil {
		s.respondError(w, errors.New(errors.ErrCodeEntityNotFound, "entity %s not in scene", req.DraggedID))
		return
	}

	forces := layout.DragStep(s.engine, req.Scene, req.DraggedID)
	if forces == nil {
		forces = map[string]geometry.Force{}
	}
	s.respondJSON(w, http.StatusOK, RepulsionResponse{Forces: forces})
}

// ArrangeRequest asks for a full grid arrange of an inline scene.
type ArrangeRequest struct {
	Scene       *scene.Scene `json:"scene"`
	CanvasWidth float64      `json:"canvas_width,omitempty"`
	Gap         float64      `json:"gap,omitempty"`
}

// ArrangeResponse carries the scene with arranged positions.
type ArrangeResponse struct {
	Scene *scene.Scene `json:"scene"`
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	var req ArrangeRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Scene == nil {
		s.respondError(w, errors.New(errors.ErrCodeInvalidScene, "request has no scene"))
		return
	}

	layout.Arrange(s.engine, req.Scene, layout.ArrangeOptions{
		CanvasWidth: req.CanvasWidth,
		Gap:         req.Gap,
	})
	s.respondJSON(w, http.StatusOK, ArrangeResponse{Scene: req.Scene})
}

// =============================================================================
// Scene Store Endpoints
// =============================================================================

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if infos == nil {
		infos = []store.SceneInfo{}
	}
	s.respondJSON(w, http.StatusOK, infos)
}

func (s *Server) handlePutScene(w http.ResponseWriter, r *http.Request) {
	var sc scene.Scene
	if err := decodeBody(r, &sc); err != nil {
		s.respondError(w, err)
		return
	}
	// The path is authoritative for the scene's identity.
	sc.ID = chi.URLParam(r, "id")

	if err := s.store.Put(r.Context(), &sc); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, &sc)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Render Endpoint
// =============================================================================

// handleRenderScene serves the scene as SVG. Artifacts are cached by
// scene content hash, so repeated renders of an unchanged scene skip
// the renderer. Query parameters:
//
//	collisions=1  highlight colliding pairs
//	labels=0      suppress labels
//	graph=1       render the Graphviz overlap diagram instead
func (s *Server) handleRenderScene(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, err := s.store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	collisions := queryBool(r, "collisions")
	labels := !queryFalse(r, "labels")
	graph := queryBool(r, "graph")

	data, err := scene.MarshalScene(sc)
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeRender, err, "hash scene"))
		return
	}
	key := cache.ArtifactKey(cache.Hash(data), cache.ArtifactKeyOpts{
		Format: renderFormat(collisions, labels, graph),
	})

	if svg, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		writeSVG(w, svg)
		return
	}

	var svg []byte
	if graph {
		svg, err = render.RenderDOT(ctx, render.ToDOT(s.engine, sc, render.DOTOptions{}))
		if err != nil {
			s.respondError(w, errors.Wrap(errors.ErrCodeRender, err, "render overlap diagram"))
			return
		}
	} else {
		var opts []render.SVGOption
		if collisions {
			opts = append(opts, render.WithCollisions())
		}
		if !labels {
			opts = append(opts, render.WithoutLabels())
		}
		svg = render.RenderSVG(s.engine, sc, opts...)
	}

	if err := s.cache.Set(ctx, key, svg, renderTTL); err != nil {
		s.logger.Warn("cache render artifact", "error", err)
	}
	writeSVG(w, svg)
}

// renderFormat folds the render options into the cache key.
func renderFormat(collisions, labels, graph bool) string {
	return "svg:" + strconv.FormatBool(collisions) + ":" + strconv.FormatBool(labels) + ":" + strconv.FormatBool(graph)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func queryBool(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "1" || v == "true"
}

func queryFalse(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "0" || v == "false"
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
