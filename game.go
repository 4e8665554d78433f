package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tileshooter/assets"
	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/raycast"
	"github.com/milk9111/tileshooter/render"
	"github.com/milk9111/tileshooter/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	cameraZoom = 2.0
	cameraLerp = 0.2
	minZoom    = 0.5
	maxZoom    = 4.0
	zoomStep   = 1.25
)

var errQuit = errors.New("quit")

var (
	enemyBillboard  color.Color = colornames.Crimson
	bulletBillboard color.Color = colornames.Gold
)

type Game struct {
	frames  int
	debug   bool
	screenW int
	screenH int

	world   *system.World
	input   *Input
	camera  *render.Camera
	tiles   *render.TileRenderer
	caster  *raycast.Renderer
	watcher *prefabs.Watcher
	paths   bool

	log logrus.FieldLogger
}

// NewGame loads levelName into a fresh world. watcher may be nil.
func NewGame(levelName string, opts system.Options, watcher *prefabs.Watcher, debug bool) (*Game, error) {
	camera := render.NewCamera(baseWidth, baseHeight, cameraZoom)
	camera.SetSmooth(cameraLerp)

	g := &Game{
		debug:   debug,
		screenW: baseWidth,
		screenH: baseHeight,
		world:   system.NewWorld(opts),
		input:   NewInput(camera),
		camera:  camera,
		watcher: watcher,
		paths:   opts.Sim.ShowPaths,
		log:     logger.For("game"),
	}
	if err := g.world.LoadNamed(levelName); err != nil {
		return nil, err
	}
	if err := g.prepareLevel(); err != nil {
		return nil, err
	}
	g.applyCursorMode(opts.Mode)
	return g, nil
}

// prepareLevel builds the renderers for the world's current level.
func (g *Game) prepareLevel() error {
	lvl := g.world.Level
	sim := g.world.Options().Sim

	caster, err := raycast.NewRenderer(lvl, sim.WallLayer, g.screenW, g.screenH, sim.FOV, assets.LoadImage)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.caster = caster
	g.tiles = render.NewTileRenderer(lvl, assets.LoadImage)

	g.camera.SetWorldBounds(lvl.Width*lvl.TileSize, lvl.Height*lvl.TileSize)
	if p := g.world.Player; p != nil {
		g.camera.SnapTo(p.Pos)
	}
	return nil
}

func (g *Game) applyCursorMode(m entity.ViewMode) {
	if m == entity.ModeFirstPerson {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reloadPrefabs()

	player := g.world.Player
	if player == nil {
		return nil
	}
	controls := g.input.Update(player.Mode(), player.Pos)
	if g.input.Quit {
		return errQuit
	}
	if g.input.ToggleMode {
		mode := entity.ModeFirstPerson
		if player.Mode() == entity.ModeFirstPerson {
			mode = entity.ModeTopDown
		}
		g.world.SetMode(mode)
		g.applyCursorMode(mode)
		g.log.WithField("mode", mode).Info("view mode changed")
	}
	switch {
	case g.input.ZoomIn:
		g.zoomBy(zoomStep)
	case g.input.ZoomOut:
		g.zoomBy(1 / zoomStep)
	}
	if g.input.TogglePaths {
		g.paths = !g.paths
		g.world.SetShowPaths(g.paths)
	}

	player.SetControls(controls)
	g.world.Update(1 / float64(ebiten.TPS()))
	g.camera.Update(player.Pos)
	return nil
}

// reloadPrefabs applies spec and script edits reported by the watcher.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		if err := g.world.ReloadPrefab(name); err != nil {
			g.log.WithError(err).Warn("prefab reload failed")
			continue
		}
		if name == "sim.yaml" {
			if err := g.prepareLevel(); err != nil {
				g.log.WithError(err).Error("renderer rebuild failed")
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	player := g.world.Player
	if player != nil && player.Mode() == entity.ModeFirstPerson {
		g.caster.Draw(screen, player.Pos, player.Heading(), g.billboards())
	} else {
		g.tiles.Draw(screen, g.camera)
		g.world.Draw(screen, g.camera.View())
	}

	if g.debug {
		msg := fmt.Sprintf("FPS: %.2f  entities: %d  pending paths: %d", ebiten.ActualFPS(), g.world.Entities.Len(), g.world.Map.Queue().Pending())
		if player != nil {
			msg += fmt.Sprintf("  hp: %d  mode: %s", player.Health(), player.Mode())
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

// billboards lists the sprites the first-person view draws.
func (g *Game) billboards() []raycast.Billboard {
	var out []raycast.Billboard
	for _, e := range g.world.Entities.Entities() {
		if e.Destroyed() {
			continue
		}
		switch e := e.(type) {
		case *entity.Enemy:
			out = append(out, raycast.Billboard{Pos: e.Pos, Size: e.Width, Color: enemyBillboard})
		case *entity.Bullet:
			out = append(out, raycast.Billboard{Pos: e.Pos, Size: e.Width, Color: bulletBillboard})
		}
	}
	return out
}

// zoomBy scales the top-down zoom, kept within [minZoom, maxZoom].
func (g *Game) zoomBy(factor float64) {
	g.camera.SetZoom(max(minZoom, min(maxZoom, g.camera.Zoom()*factor)))
}

// resize matches the camera and the ray caster to a new logical screen size.
func (g *Game) resize(w, h int) {
	if w <= 0 || h <= 0 || (w == g.screenW && h == g.screenH) {
		return
	}
	g.screenW, g.screenH = w, h
	g.camera.SetScreenSize(w, h)
	if g.caster != nil {
		g.caster.Caster.Resize(w, h)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.resize(int(math.Ceil(outsideWidth)), int(math.Ceil(outsideHeight)))
	return float64(g.screenW), float64(g.screenH)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
