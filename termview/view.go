// Package termview draws a running World as a character grid on a tcell
// screen: one cell per tile, enemy paths overlaid, a status line at the bottom.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/system"
	"github.com/milk9111/tileshooter/tilemap"
)

const (
	GlyphWall   = '#'
	GlyphFloor  = '.'
	GlyphPath   = '*'
	GlyphPlayer = '@'
	GlyphEnemy  = 'E'
	GlyphBullet = 'o'
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePath   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	stylePursue = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEngage = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBullet = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

const statusHeight = 1

// Viewer steps a World and mirrors it onto a terminal screen.
type Viewer struct {
	screen tcell.Screen
	world  *system.World

	paths  bool
	paused bool
	step   bool
	ticks  int

	controls entity.Controls
	log      logrus.FieldLogger
}

func New(screen tcell.Screen, world *system.World) *Viewer {
	return &Viewer{
		screen: screen,
		world:  world,
		paths:  true,
		log:    logger.For("termview"),
	}
}

func (v *Viewer) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		v.log = l
	}
}

func (v *Viewer) Paused() bool { return v.paused }
func (v *Viewer) ShowPaths() bool { return v.paths }
func (v *Viewer) Ticks() int { return v.ticks }

// HandleEvent applies a terminal event. It returns false when the viewer
// should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.controls.MoveY = -1
	case tcell.KeyDown:
		v.controls.MoveY = 1
	case tcell.KeyLeft:
		v.controls.MoveX = -1
	case tcell.KeyRight:
		v.controls.MoveX = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
			v.log.WithField("paused", v.paused).Debug("pause toggled")
		case 'p':
			v.paths = !v.paths
		case '.':
			v.step = true
		case 'f':
			v.controls.Fire = true
		}
	}
	return true
}

// Advance runs one simulation tick unless paused. A single-step request
// advances a paused world once. Key controls last for one tick.
func (v *Viewer) Advance(dt float64) bool {
	if v.paused && !v.step {
		return false
	}
	v.step = false

	if p := v.world.Player; p != nil {
		c := v.controls
		if c.Fire {
			if aim, ok := v.nearestEnemy(p.Pos); ok {
				c.Aim, c.HasAim = aim, true
			}
		}
		p.SetControls(c)
	}
	v.world.Update(dt)
	v.controls = entity.Controls{}
	if p := v.world.Player; p != nil {
		p.SetControls(entity.Controls{})
	}
	v.ticks++
	return true
}

func (v *Viewer) nearestEnemy(from cp.Vector) (cp.Vector, bool) {
	var (
		best  cp.Vector
		found bool
		dist  float64
	)
	for _, e := range v.world.Enemies() {
		d := e.Pos.Distance(from)
		if !found || d < dist {
			best, dist, found = e.Pos, d, true
		}
	}
	return best, found
}

// Origin returns the tile shown in the top-left cell. The view centres on
// the player and stays inside the map.
func (v *Viewer) Origin() (int, int) {
	m := v.world.Map
	if m == nil || m.Level() == nil {
		return 0, 0
	}
	w, h := v.screen.Size()
	h -= statusHeight
	lvl := m.Level()

	cx, cy := lvl.Width/2, lvl.Height/2
	if p := v.world.Player; p != nil {
		c := m.TilePosition(p.Pos)
		cx, cy = c.X, c.Y
	}
	return clampOrigin(cx-w/2, w, lvl.Width), clampOrigin(cy-h/2, h, lvl.Height)
}

func clampOrigin(o, view, extent int) int {
	if extent <= view {
		return 0
	}
	return max(0, min(o, extent-view))
}

// Draw renders the current world state and shows the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	if m := v.world.Map; m != nil {
		ox, oy := v.Origin()
		v.drawTiles(m, ox, oy)
		if v.paths {
			v.drawPaths(m, ox, oy)
		}
		v.drawEntities(m, ox, oy)
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawTiles(m *tilemap.Map, ox, oy int) {
	lvl := m.Level()
	grid := m.Grid()
	w, h := v.screen.Size()
	h -= statusHeight
	for sy := 0; sy < h; sy++ {
		ty := oy + sy
		if ty >= lvl.Height {
			break
		}
		for sx := 0; sx < w; sx++ {
			tx := ox + sx
			if tx >= lvl.Width {
				break
			}
			if grid.Blocked(tx, ty) {
				v.screen.SetContent(sx, sy, GlyphWall, nil, styleWall)
			} else {
				v.screen.SetContent(sx, sy, GlyphFloor, nil, styleFloor)
			}
		}
	}
}

func (v *Viewer) drawPaths(m *tilemap.Map, ox, oy int) {
	for _, e := range v.world.Enemies() {
		for _, wp := range e.Path() {
			v.put(m.TilePosition(wp), ox, oy, GlyphPath, stylePath)
		}
	}
}

func (v *Viewer) drawEntities(m *tilemap.Map, ox, oy int) {
	for _, e := range v.world.Entities.Entities() {
		if e.Destroyed() {
			continue
		}
		switch e := e.(type) {
		case *entity.Bullet:
			v.put(m.TilePosition(e.Pos), ox, oy, GlyphBullet, styleBullet)
		case *entity.Enemy:
			style := stylePursue
			if e.State() == entity.StateEngage {
				style = styleEngage
			}
			v.put(m.TilePosition(e.Pos), ox, oy, GlyphEnemy, style)
		}
	}
	if p := v.world.Player; p != nil && !p.Destroyed() {
		v.put(m.TilePosition(p.Pos), ox, oy, GlyphPlayer, stylePlayer)
	}
}

func (v *Viewer) put(c tilemap.TileCoord, ox, oy int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	sx, sy := c.X-ox, c.Y-oy
	if sx < 0 || sy < 0 || sx >= w || sy >= h-statusHeight {
		return
	}
	v.screen.SetContent(sx, sy, r, nil, style)
}

// Status is the text of the bottom line.
func (v *Viewer) Status() string {
	hp := 0
	if p := v.world.Player; p != nil {
		hp = p.Health()
	}
	pending := 0
	if m := v.world.Map; m != nil {
		pending = m.Queue().Pending()
	}
	s := fmt.Sprintf("hp %d  enemies %d  pending %d  tick %d", hp, len(v.world.Enemies()), pending, v.ticks)
	if v.paused {
		s += "  [paused]"
	}
	return s
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	if h < statusHeight {
		return
	}
	y := h - 1
	text := []rune(v.Status())
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		v.screen.SetContent(x, y, r, nil, styleStatus)
	}
}
