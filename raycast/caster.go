package raycast

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/common"
)

// Side tells which grid line a ray crossed when it hit a wall.
type Side int

const (
	SideX Side = iota // a vertical grid line, the wall faces east or west
	SideY             // a horizontal grid line, the wall faces north or south
)

// Hit is the result of casting one screen column.
type Hit struct {
	Column int
	// Distance is perpendicular to the camera plane, in world pixels, so
	// flat walls do not bow.
	Distance float64
	Side     Side
	// TexCoord is the horizontal position across the wall face in [0, 1).
	TexCoord float64
	Tile     int
	TileX    int
	TileY    int
	OK       bool
}

// Caster casts one ray per screen column and keeps the per-column depth
// buffer sprites are tested against.
type Caster struct {
	Width  int
	Height int
	// FOV is the horizontal field of view in degrees.
	FOV float64

	depth []float64
}

func NewCaster(width, height int, fov float64) *Caster {
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	c := &Caster{Width: max(1, width), Height: max(1, height), FOV: fov}
	c.depth = make([]float64, c.Width)
	c.ClearDepthBuffer()
	return c
}

// Resize changes the screen size and clears the depth buffer.
func (c *Caster) Resize(width, height int) {
	c.Width, c.Height = max(1, width), max(1, height)
	if cap(c.depth) >= c.Width {
		c.depth = c.depth[:c.Width]
	} else {
		c.depth = make([]float64, c.Width)
	}
	c.ClearDepthBuffer()
}

// ClearDepthBuffer resets every column to infinitely far. Call once per frame
// before casting.
func (c *Caster) ClearDepthBuffer() {
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
}

// DepthAt returns the nearest wall distance recorded for col.
func (c *Caster) DepthAt(col int) float64 {
	if col < 0 || col >= len(c.depth) {
		return math.Inf(1)
	}
	return c.depth[col]
}

// Basis returns the unit view direction for angle (degrees) and the camera
// plane, which points to the viewer's right with half-width tan(FOV/2).
func (c *Caster) Basis(angle float64) (dir, plane cp.Vector) {
	dir = common.DirectionFromDegrees(angle)
	right := cp.Vector{X: -dir.Y, Y: dir.X}
	return dir, right.Mult(math.Tan(c.FOV * math.Pi / 360))
}

// Cast fills the depth buffer and returns one hit per column.
func (c *Caster) Cast(walls *Walls, pos cp.Vector, angle float64) []Hit {
	hits := make([]Hit, c.Width)
	dir, plane := c.Basis(angle)
	for col := range hits {
		cameraX := 2*(float64(col)+0.5)/float64(c.Width) - 1
		h := castRay(walls, pos, dir.Add(plane.Mult(cameraX)))
		h.Column = col
		if h.OK && h.Distance < c.depth[col] {
			c.depth[col] = h.Distance
		}
		hits[col] = h
	}
	return hits
}

// WallSlice returns the top and height in screen pixels of the wall drawn for
// h. A wall one tile away fills the screen height.
func (c *Caster) WallSlice(h Hit, tileSize float64) (top, height float64) {
	if !h.OK || h.Distance <= common.Epsilon {
		return 0, float64(c.Height)
	}
	height = float64(c.Height) * tileSize / h.Distance
	top = (float64(c.Height) - height) / 2
	return top, height
}

// castRay walks the grid with DDA. rayDir need not be unit length; with a
// unit view direction plus a camera-plane offset the returned distance is
// already perpendicular.
func castRay(walls *Walls, pos cp.Vector, rayDir cp.Vector) Hit {
	if walls == nil || walls.tileSize <= 0 {
		return Hit{}
	}
	ts := walls.tileSize
	px, py := pos.X/ts, pos.Y/ts
	mapX, mapY := int(math.Floor(px)), int(math.Floor(py))

	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if rayDir.X != 0 {
		deltaX = math.Abs(1 / rayDir.X)
	}
	if rayDir.Y != 0 {
		deltaY = math.Abs(1 / rayDir.Y)
	}

	stepX, stepY := 1, 1
	sideX := (float64(mapX) + 1 - px) * deltaX
	sideY := (float64(mapY) + 1 - py) * deltaY
	if rayDir.X < 0 {
		stepX = -1
		sideX = (px - float64(mapX)) * deltaX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideY = (py - float64(mapY)) * deltaY
	}

	maxSteps := walls.width + walls.height + 2
	for i := 0; i < maxSteps; i++ {
		var side Side
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideY
		}
		if !walls.inBounds(mapX, mapY) {
			return Hit{}
		}
		tile := walls.At(mapX, mapY)
		if tile == 0 {
			continue
		}

		var perp, tex float64
		if side == SideX {
			perp = sideX - deltaX
			tex = py + perp*rayDir.Y
		} else {
			perp = sideY - deltaY
			tex = px + perp*rayDir.X
		}
		tex -= math.Floor(tex)
		if side == SideX && rayDir.X > 0 {
			tex = 1 - tex
		}
		if side == SideY && rayDir.Y < 0 {
			tex = 1 - tex
		}
		return Hit{
			Distance: perp * ts,
			Side:     side,
			TexCoord: min(tex, math.Nextafter(1, 0)),
			Tile:     tile,
			TileX:    mapX,
			TileY:    mapY,
			OK:       true,
		}
	}
	return Hit{}
}
