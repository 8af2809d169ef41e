// Package geom provides the 2D geometric primitives underlying the shape
// model: points, vectors, affine transforms, rectangles, line segments,
// quadratic and cubic Bézier curves, and elliptical-arc to Bézier conversion.
//
// Coordinates are float64 throughout. The rotation convention is that a
// positive angle rotates the positive x direction into positive y, matching
// the usual y-down convention of 2D graphics.
package geom
