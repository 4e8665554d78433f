package tilemap

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/common"
)

// Body is anything with a world-space bounding box.
type Body interface {
	Bounds() cp.BB
}

// Mover is a Body whose position can be shifted.
type Mover interface {
	Body
	Translate(delta cp.Vector)
}

// Resolver corrects requested velocities so boxes never enter solid tiles.
type Resolver struct {
	grid     *Grid
	tileSize float64
}

func NewResolver(grid *Grid, tileSize float64) *Resolver {
	return &Resolver{grid: grid, tileSize: tileSize}
}

// Resolve returns v corrected for body's swept movement against the grid.
func (r *Resolver) Resolve(body Body, v cp.Vector) cp.Vector {
	if body == nil {
		return v
	}
	return r.ResolveBox(body.Bounds(), v)
}

// Move resolves v for m, applies it, and returns the applied velocity.
func (r *Resolver) Move(m Mover, v cp.Vector) cp.Vector {
	if m == nil {
		return cp.Vector{}
	}
	v = r.Resolve(m, v)
	if v.X != 0 || v.Y != 0 {
		m.Translate(v)
	}
	return v
}

// ResolveBox corrects v for box. Solid tiles under the swept region
// (box joined with box+v) are visited row-major; each one still overlapping
// the swept region of the corrected velocity pushes back along the moving
// axis with the smaller overlap. Corrections accumulate and never reverse
// a component's sign. Concave multi-tile contacts are approximate; a final
// pass zeroes whichever axis still penetrates.
func (r *Resolver) ResolveBox(box cp.BB, v cp.Vector) cp.Vector {
	if r == nil || r.grid == nil || r.tileSize <= 0 {
		return v
	}
	if v.X == 0 && v.Y == 0 {
		return v
	}

	x0, y0, x1, y1, ok := r.tileRange(common.Union(box, common.Translate(box, v)))
	if !ok {
		return v
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !r.grid.Blocked(x, y) {
				continue
			}
			tile := TileBounds(TileCoord{X: x, Y: y}, r.tileSize)
			swept := common.Union(box, common.Translate(box, v))
			ox, oy := common.Overlap(swept, tile)
			if ox <= common.Epsilon || oy <= common.Epsilon {
				continue
			}
			v = pushBack(v, ox, oy)
			if v.X == 0 && v.Y == 0 {
				return v
			}
		}
	}

	return r.settle(box, v)
}

// pushBack subtracts the signed overlap along the moving axis with the
// smaller extent.
func pushBack(v cp.Vector, ox, oy float64) cp.Vector {
	useX := v.X != 0 && (v.Y == 0 || ox < oy)
	if useX {
		v.X = shrink(v.X, ox)
	} else {
		v.Y = shrink(v.Y, oy)
	}
	return v
}

// shrink reduces |c| by amount without crossing zero.
func shrink(c, amount float64) float64 {
	mag := math.Abs(c) - amount
	if mag <= common.Epsilon {
		return 0
	}
	return common.Sign(c) * mag
}

func (r *Resolver) settle(box cp.BB, v cp.Vector) cp.Vector {
	if !r.penetrates(common.Translate(box, v)) {
		return v
	}
	candidates := []cp.Vector{{X: 0, Y: v.Y}, {X: v.X, Y: 0}, {}}
	for _, c := range candidates {
		if !r.penetrates(common.Translate(box, c)) {
			return c
		}
	}
	return cp.Vector{}
}

// Penetrates reports whether box overlaps any solid tile.
func (r *Resolver) Penetrates(box cp.BB) bool {
	if r == nil || r.grid == nil {
		return false
	}
	return r.penetrates(box)
}

func (r *Resolver) penetrates(box cp.BB) bool {
	x0, y0, x1, y1, ok := r.tileRange(box)
	if !ok {
		return false
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !r.grid.Blocked(x, y) {
				continue
			}
			if common.Intersects(box, TileBounds(TileCoord{X: x, Y: y}, r.tileSize)) {
				return true
			}
		}
	}
	return false
}

// tileRange returns the grid cells touched by bb clamped to the grid, or
// ok=false when bb lies entirely outside it.
func (r *Resolver) tileRange(bb cp.BB) (x0, y0, x1, y1 int, ok bool) {
	x0 = int(math.Floor(bb.L / r.tileSize))
	y0 = int(math.Floor(bb.B / r.tileSize))
	x1 = int(math.Floor(bb.R / r.tileSize))
	y1 = int(math.Floor(bb.T / r.tileSize))
	w, h := r.grid.Width(), r.grid.Height()
	if x1 < 0 || y1 < 0 || x0 >= w || y0 >= h {
		return 0, 0, 0, 0, false
	}
	return common.Clamp(x0, 0, w-1), common.Clamp(y0, 0, h-1), common.Clamp(x1, 0, w-1), common.Clamp(y1, 0, h-1), true
}
