package raycast

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tileshooter/common"
	"github.com/milk9111/tileshooter/level"
	"github.com/milk9111/tileshooter/logger"
)

// Billboard is a flat, camera-facing sprite drawn in the first-person view.
type Billboard struct {
	Pos   cp.Vector
	Size  float64
	Color color.Color
}

// ImageLoader resolves tileset image paths.
type ImageLoader func(path string) (*ebiten.Image, error)

// Renderer draws the first-person view of one level.
type Renderer struct {
	Caster *Caster

	Ceiling color.Color
	Floor   color.Color

	level    *level.Level
	walls    *Walls
	fallback color.Color
	images   map[string]*ebiten.Image
	load     ImageLoader
	log      logrus.FieldLogger
}

// NewRenderer casts against wallLayer of lvl. load may be nil, in which case
// walls are drawn in the layer's flat colour.
func NewRenderer(lvl *level.Level, wallLayer string, width, height int, fov float64, load ImageLoader) (*Renderer, error) {
	walls, err := NewWalls(lvl, wallLayer)
	if err != nil {
		return nil, err
	}
	fallback := color.Color(colornames.Slategray)
	if i := lvl.LayerIndex(wallLayer); i >= 0 {
		if c, err := common.ParseHexColor(lvl.LayerMeta[i].Color); err == nil {
			fallback = c
		}
	}
	return &Renderer{
		Caster:   NewCaster(width, height, fov),
		Ceiling:  colornames.Darkslategray,
		Floor:    colornames.Dimgray,
		level:    lvl,
		walls:    walls,
		fallback: fallback,
		images:   make(map[string]*ebiten.Image),
		load:     load,
		log:      logger.For("raycast"),
	}, nil
}

func (r *Renderer) Walls() *Walls { return r.walls }

// Draw renders walls then billboards, far to near, as seen from pos facing
// angle degrees.
func (r *Renderer) Draw(screen *ebiten.Image, pos cp.Vector, angle float64, billboards []Billboard) {
	c := r.Caster
	if b := screen.Bounds(); b.Dx() != c.Width || b.Dy() != c.Height {
		c.Resize(b.Dx(), b.Dy())
	}
	w, h := float32(c.Width), float32(c.Height)
	vector.DrawFilledRect(screen, 0, 0, w, h/2, r.Ceiling, false)
	vector.DrawFilledRect(screen, 0, h/2, w, h/2, r.Floor, false)

	c.ClearDepthBuffer()
	for _, hit := range c.Cast(r.walls, pos, angle) {
		if hit.OK {
			r.drawColumn(screen, hit)
		}
	}

	type projected struct {
		p   Projection
		clr color.Color
	}
	var list []projected
	for _, b := range billboards {
		if p, ok := c.ProjectSprite(pos, angle, b.Pos, b.Size); ok {
			list = append(list, projected{p: p, clr: b.Color})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].p.Depth > list[j].p.Depth })
	for _, it := range list {
		drawProjection(screen, it.p, it.clr)
	}
}

func (r *Renderer) drawColumn(screen *ebiten.Image, hit Hit) {
	top, height := r.Caster.WallSlice(hit, r.walls.tileSize)
	shade := float32(1)
	if hit.Side == SideY {
		shade = 0.7
	}

	if src, ok := r.textureColumn(hit); ok {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, height/float64(src.Bounds().Dy()))
		op.GeoM.Translate(float64(hit.Column), top)
		op.ColorScale.Scale(shade, shade, shade, 1)
		screen.DrawImage(src, op)
		return
	}

	cr, cg, cb, ca := r.fallback.RGBA()
	clr := color.RGBA{
		R: uint8(float32(cr>>8) * shade),
		G: uint8(float32(cg>>8) * shade),
		B: uint8(float32(cb>>8) * shade),
		A: uint8(ca >> 8),
	}
	vector.DrawFilledRect(screen, float32(hit.Column), float32(top), 1, float32(height), clr, false)
}

// textureColumn returns the one-pixel-wide slice of the tileset image for hit.
func (r *Renderer) textureColumn(hit Hit) (*ebiten.Image, bool) {
	ts := r.level.TilesetForTile(hit.Tile)
	if ts == nil || r.load == nil {
		return nil, false
	}
	img, ok := r.images[ts.Image]
	if !ok {
		var err error
		img, err = r.load(ts.Image)
		if err != nil {
			r.log.WithError(err).WithField("image", ts.Image).Warn("tileset image unavailable; using flat colour")
			img = nil
		}
		r.images[ts.Image] = img
	}
	if img == nil {
		return nil, false
	}
	src := ts.SourceRect(hit.Tile)
	x := src.Min.X + int(hit.TexCoord*float64(src.Dx()))
	col := image.Rect(x, src.Min.Y, x+1, src.Max.Y)
	return img.SubImage(col).(*ebiten.Image), true
}

func drawProjection(screen *ebiten.Image, p Projection, clr color.Color) {
	for i, ok := range p.Visible {
		if !ok {
			continue
		}
		vector.DrawFilledRect(screen, float32(p.Start+i), float32(p.Top), 1, float32(p.Size), clr, false)
	}
}
