// Package render turns scenes into visual artifacts.
//
// Two renderers are provided:
//
//   - [RenderSVG] draws the scene itself: zones as outlined regions,
//     entities as typed colored boxes, with optional collision
//     highlighting.
//   - [ToDOT] plus [RenderDOT] build an overlap diagram: a node-link
//     graph where entities are nodes and colliding pairs are edges,
//     laid out by Graphviz.
//
// Both produce standalone SVG bytes suitable for writing to disk or
// serving over HTTP.
package render
