package raycast

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/common"
)

// Projection places a world-space billboard on screen.
type Projection struct {
	// CenterX is the screen column of the sprite centre.
	CenterX float64
	Top     float64
	Size    float64
	// Depth is the camera-space distance in world pixels.
	Depth float64
	// Start and End bound the on-screen columns, End exclusive.
	Start, End int
	// Visible marks the columns in [Start, End) that pass the depth test.
	Visible []bool
}

// ProjectSprite projects a billboard of world size size at spritePos as seen
// from pos looking along angle (degrees). It reports false when the sprite
// is behind the viewer, off screen, or hidden behind walls in every column.
// Cast must have filled the depth buffer first.
func (c *Caster) ProjectSprite(pos cp.Vector, angle float64, spritePos cp.Vector, size float64) (Projection, bool) {
	dir, plane := c.Basis(angle)
	rel := spritePos.Sub(pos)

	det := plane.X*dir.Y - dir.X*plane.Y
	if math.Abs(det) < common.Epsilon {
		return Projection{}, false
	}
	tx := (dir.Y*rel.X - dir.X*rel.Y) / det
	depth := (-plane.Y*rel.X + plane.X*rel.Y) / det
	if depth <= common.Epsilon {
		return Projection{}, false
	}

	w := float64(c.Width)
	h := float64(c.Height)
	screenSize := h * size / depth
	p := Projection{
		CenterX: w / 2 * (1 + tx/depth),
		Top:     (h - screenSize) / 2,
		Size:    screenSize,
		Depth:   depth,
	}
	p.Start = max(0, int(math.Floor(p.CenterX-screenSize/2)))
	p.End = min(c.Width, int(math.Ceil(p.CenterX+screenSize/2)))
	if p.Start >= p.End {
		return Projection{}, false
	}

	p.Visible = make([]bool, p.End-p.Start)
	seen := false
	for col := p.Start; col < p.End; col++ {
		if depth < c.DepthAt(col) {
			p.Visible[col-p.Start] = true
			seen = true
		}
	}
	if !seen {
		return Projection{}, false
	}
	return p, true
}
