// Package geo maps geographic coordinates onto a sphere and builds the curved
// "flight line" arcs drawn between two points on the globe.
//
// Cartesian points use the scene's Y-up frame: +Y is the north pole,
// longitude 0 on the equator lies on +X and longitude 90 on -Z.
package geo
