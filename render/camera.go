package render

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/entity"
)

// Camera follows a world point and converts it to a top-left view origin.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    float64(screenW) / 2,
		PosY:    float64(screenH) / 2,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW, c.screenH = w, h
}

// SetWorldBounds sets the world pixel dimensions the view is kept inside.
func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = float64(w)
	c.worldH = float64(h)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = max(0, f)
}

// ViewSize returns the visible world extent.
func (c *Camera) ViewSize() (float64, float64) {
	return float64(c.screenW) / c.zoom, float64(c.screenH) / c.zoom
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	w, h := c.ViewSize()
	return c.PosX - w/2, c.PosY - h/2
}

// View returns the projection entities draw with.
func (c *Camera) View() entity.View {
	x, y := c.ViewTopLeft()
	return entity.View{X: x, Y: y, Zoom: c.zoom}
}

// Update eases toward target. Call once per tick.
func (c *Camera) Update(target cp.Vector) {
	if c.smooth <= 0 || c.smooth >= 1 {
		c.PosX, c.PosY = target.X, target.Y
	} else {
		c.PosX += (target.X - c.PosX) * c.smooth
		c.PosY += (target.Y - c.PosY) * c.smooth
	}
	c.settle()
}

// SnapTo jumps straight to target, e.g. after a level load.
func (c *Camera) SnapTo(target cp.Vector) {
	c.PosX, c.PosY = target.X, target.Y
	c.settle()
}

// settle snaps to the 1/zoom pixel grid and clamps to the world bounds.
func (c *Camera) settle() {
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	viewW, viewH := c.ViewSize()
	c.PosX = clampAxis(c.PosX, viewW/2, c.worldW)
	c.PosY = clampAxis(c.PosY, viewH/2, c.worldH)
}

func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	lo, hi := half, world-half
	if hi < lo {
		return world / 2
	}
	return min(max(pos, lo), hi)
}
