package shape

import (
	"errors"

	"github.com/vecsketch/vecsketch/geom"
)

var (
	// ErrEmptyPolyline is returned by append operations that need at least
	// one existing vertex to attach to.
	ErrEmptyPolyline = errors.New("shape: polyline has no vertices")

	// ErrClosedPolyline is returned when appending to a polyline whose
	// topology is already closed.
	ErrClosedPolyline = errors.New("shape: polyline is closed")

	// ErrInvalidRadius rejects non-positive radii.
	ErrInvalidRadius = errors.New("shape: radius must be positive")

	// ErrInvalidEccentricity rejects eccentricities outside [0, 1).
	ErrInvalidEccentricity = errors.New("shape: eccentricity must be in [0, 1)")

	// ErrInvalidScale rejects scale factors with a zero component.
	ErrInvalidScale = errors.New("shape: scale factor must be non-zero")

	// ErrInvalidSides rejects regular polygons with fewer than three sides.
	ErrInvalidSides = errors.New("shape: regular polygon needs at least 3 sides")

	// ErrInvalidSweep rejects arc sweeps too small to define an arc.
	ErrInvalidSweep = errors.New("shape: sweep angle too small")
)

// checkScale validates a scale factor for the ScaleBy operations. A zero
// component would collapse the shape irrecoverably, so it is rejected and the
// shape left unchanged.
func checkScale(factor geom.Vec2) error {
	if factor.X == 0 || factor.Y == 0 {
		return ErrInvalidScale
	}
	return nil
}
