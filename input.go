package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/render"
)

const (
	stickDeadzone = 0.3
	stickAimReach = 200.0

	// degrees-per-pixel multiplier applied on top of the player's turn speed
	mouseTurnScale = 0.05
)

// Input polls keyboard, mouse and the first gamepad each tick.
type Input struct {
	// ToggleMode is true on the frame F4 was pressed.
	ToggleMode bool
	// TogglePaths is true on the frame F3 was pressed.
	TogglePaths bool
	// ZoomIn/ZoomOut are true on the frame +/- or the wheel asked for it.
	ZoomIn  bool
	ZoomOut bool
	Quit    bool

	camera Camera
	lastX  int
	primed bool
}

// Camera is the subset of render.Camera the input needs for mouse aiming.
type Camera interface {
	ViewTopLeft() (float64, float64)
	Zoom() float64
}

var _ Camera = (*render.Camera)(nil)

func NewInput(camera Camera) *Input {
	return &Input{camera: camera}
}

// Update polls devices and returns the player controls for mode. from is
// the player position the right stick aims around.
func (i *Input) Update(mode entity.ViewMode, from cp.Vector) entity.Controls {
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	i.ToggleMode = inpututil.IsKeyJustPressed(ebiten.KeyF4)
	i.TogglePaths = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	_, wheel := ebiten.Wheel()
	i.ZoomIn = inpututil.IsKeyJustPressed(ebiten.KeyEqual) || wheel > 0
	i.ZoomOut = inpututil.IsKeyJustPressed(ebiten.KeyMinus) || wheel < 0

	var c entity.Controls
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		c.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		c.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		c.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		c.MoveY += 1
	}
	c.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)

	mx, my := ebiten.CursorPosition()
	switch mode {
	case entity.ModeFirstPerson:
		if i.primed {
			c.Turn = float64(mx-i.lastX) * mouseTurnScale
		}
		if ebiten.IsKeyPressed(ebiten.KeyQ) {
			c.Turn -= 1
		}
		if ebiten.IsKeyPressed(ebiten.KeyE) {
			c.Turn += 1
		}
	default:
		if i.camera != nil {
			vx, vy := i.camera.ViewTopLeft()
			z := i.camera.Zoom()
			c.Aim = cp.Vector{X: vx + float64(mx)/z, Y: vy + float64(my)/z}
			c.HasAim = true
		}
	}
	i.lastX, i.primed = mx, true

	i.gamepad(&c, mode, from)
	return c
}

func (i *Input) gamepad(c *entity.Controls, mode entity.ViewMode, from cp.Vector) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return
	}
	gid := ids[0]

	lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	if lx < -stickDeadzone || lx > stickDeadzone {
		c.MoveX = lx
	}
	if ly < -stickDeadzone || ly > stickDeadzone {
		c.MoveY = ly
	}

	rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
	if mode == entity.ModeFirstPerson {
		if rx < -stickDeadzone || rx > stickDeadzone {
			c.Turn = rx
		}
	} else if rx*rx+ry*ry > stickDeadzone*stickDeadzone {
		c.Aim = from.Add(cp.Vector{X: rx, Y: ry}.Normalize().Mult(stickAimReach))
		c.HasAim = true
	}

	if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight) {
		c.Fire = true
	}
	if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
		i.ToggleMode = true
	}
}
