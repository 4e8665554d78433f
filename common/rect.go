package common

import "github.com/jakecoffman/cp"

// Boxes use cp.BB with screen orientation: L/R are min/max X and B/T are
// min/max Y.

// BoxAt returns the box of the given size centred on pos.
func BoxAt(pos cp.Vector, width, height float64) cp.BB {
	hw, hh := width/2, height/2
	return cp.BB{L: pos.X - hw, B: pos.Y - hh, R: pos.X + hw, T: pos.Y + hh}
}

// Translate moves a box by v.
func Translate(bb cp.BB, v cp.Vector) cp.BB {
	return cp.BB{L: bb.L + v.X, B: bb.B + v.Y, R: bb.R + v.X, T: bb.T + v.Y}
}

// Union returns the smallest box containing both a and b.
func Union(a, b cp.BB) cp.BB {
	return a.Merge(b)
}

// Overlap returns the extents of the intersection of a and b. Both are
// positive only when the boxes strictly overlap; touching edges yield zero.
func Overlap(a, b cp.BB) (w, h float64) {
	w = min(a.R, b.R) - max(a.L, b.L)
	h = min(a.T, b.T) - max(a.B, b.B)
	return w, h
}

// Intersects reports whether a and b overlap by more than Epsilon on both axes.
func Intersects(a, b cp.BB) bool {
	w, h := Overlap(a, b)
	return w > Epsilon && h > Epsilon
}
