package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultTileSize is the edge length in world pixels of one map tile.
const DefaultTileSize = 32

// Epsilon is the tolerance used when comparing world-space extents.
const Epsilon = 1e-6

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DirectionFromDegrees returns the unit vector for an angle measured in degrees.
func DirectionFromDegrees(deg float64) cp.Vector {
	rad := deg * math.Pi / 180
	return cp.Vector{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Normalize returns v scaled to unit length, or the zero vector when v is zero.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < Epsilon {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// Angle returns the heading of v in radians.
func Angle(v cp.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}
