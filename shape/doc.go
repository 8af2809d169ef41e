// Package shape implements the editable 2D vector shape model: points,
// circles and circular arcs, ellipses, polylines with mixed straight and
// Bézier segments, text anchors, and compound aggregates.
//
// Every shape supports the same contract: distance and containment queries,
// cached bounds, snapping, in-place affine transforms, flattening to point
// lists for collider generation, contour emission for external fill/stroke
// tessellation, and SVG path serialization.
package shape
