// Package geogl is a small, predictable software 3D engine for the globe
// viewer.
//
// It covers what the viewer needs and nothing more: an owned scene graph of
// meshes, point sprites and polylines, orthographic and perspective cameras,
// an orbit controller, asynchronous texture loading and a fixed software
// pipeline:
//
//	Scene → Transform → Projection → Rasterization → Frame output.
//
// The renderer draws into a Target. It keeps its depth buffer between frames
// and avoids allocations in the render hot path.
//
// Matrices are mgl32 values (column-major, m[col*4+row]).
package geogl
