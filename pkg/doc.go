// Package pkg provides the core libraries for Driftboard spatial
// placement.
//
// # Overview
//
// Driftboard keeps entities on an interactive canvas from overlapping.
// The pkg directory is organized into these areas:
//
//  1. [scene] - Scene model (entities, zones, serialization)
//  2. [geometry] - The engine (sizes, bounds, collision, repulsion, placement)
//  3. [layout] - Canvas-level passes (grid arrange, drag step)
//  4. [render] - SVG scene renderer and Graphviz overlap diagrams
//  5. [store] / [cache] - Scene persistence and render artifact caching
//  6. [config] - TOML configuration
//
// # Architecture
//
// The typical data flow through Driftboard:
//
//	Scene JSON (entities + zones)
//	         ↓
//	    [geometry] package (resolve sizes, detect collisions)
//	         ↓
//	    [layout] package (arrange / drag policies)
//	         ↓
//	    [render] package (SVG output)
//
// The geometry engine is stateless and safe for concurrent use; the
// HTTP API in internal/server shares one engine across requests.
package pkg
