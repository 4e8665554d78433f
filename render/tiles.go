package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tileshooter/common"
	"github.com/milk9111/tileshooter/level"
	"github.com/milk9111/tileshooter/logger"
)

// visibleMargin pads the visible range so partially scrolled tiles at the
// far edges are still drawn.
const visibleMargin = 2

// TileRange is a half-open rectangle of tile coordinates.
type TileRange struct {
	X0, Y0, X1, Y1 int
}

func (r TileRange) Empty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }

// VisibleRange returns the tiles a view of size viewW x viewH with top-left
// (left, top) can show, padded by visibleMargin and clamped to the map.
func VisibleRange(left, top, viewW, viewH float64, tileW, tileH, mapW, mapH int) TileRange {
	if tileW <= 0 || tileH <= 0 {
		return TileRange{}
	}
	x0 := int(math.Floor(left / float64(tileW)))
	y0 := int(math.Floor(top / float64(tileH)))
	x1 := x0 + int(viewW)/tileW + visibleMargin
	y1 := y0 + int(viewH)/tileH + visibleMargin
	return TileRange{
		X0: common.Clamp(x0, 0, mapW),
		Y0: common.Clamp(y0, 0, mapH),
		X1: common.Clamp(x1, 0, mapW),
		Y1: common.Clamp(y1, 0, mapH),
	}
}

// ImageLoader resolves tileset image paths.
type ImageLoader func(path string) (*ebiten.Image, error)

// TileRenderer draws the visible layers of a level from the top-down view.
type TileRenderer struct {
	level  *level.Level
	load   ImageLoader
	images map[string]*ebiten.Image
	colors []color.Color
	log    logrus.FieldLogger
}

func NewTileRenderer(lvl *level.Level, load ImageLoader) *TileRenderer {
	r := &TileRenderer{
		level:  lvl,
		load:   load,
		images: make(map[string]*ebiten.Image),
		log:    logger.For("tiles"),
	}
	for _, meta := range lvl.LayerMeta {
		c, err := common.ParseHexColor(meta.Color)
		if err != nil {
			c = color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}
		}
		r.colors = append(r.colors, c)
	}
	return r
}

// Draw renders every visible layer bottom-up through cam. Tiles whose id maps
// to no tileset are decorative leftovers and are skipped.
func (r *TileRenderer) Draw(screen *ebiten.Image, cam *Camera) {
	lvl := r.level
	left, top := cam.ViewTopLeft()
	viewW, viewH := cam.ViewSize()
	ts := lvl.TileSize
	rng := VisibleRange(left, top, viewW, viewH, ts, ts, lvl.Width, lvl.Height)
	if rng.Empty() {
		return
	}
	zoom := cam.Zoom()

	for li := range lvl.Layers {
		if !lvl.LayerVisible(li) {
			continue
		}
		for y := rng.Y0; y < rng.Y1; y++ {
			for x := rng.X0; x < rng.X1; x++ {
				gid := lvl.TileAt(li, x, y)
				if gid <= 0 {
					continue
				}
				tileset := lvl.TilesetForTile(gid)
				if tileset == nil {
					continue
				}
				dst := tileset.DestRect(x, y)
				sx := float32((float64(dst.Min.X) - left) * zoom)
				sy := float32((float64(dst.Min.Y) - top) * zoom)

				img := r.image(tileset.Image)
				if img == nil {
					vector.DrawFilledRect(screen, sx, sy, float32(float64(dst.Dx())*zoom), float32(float64(dst.Dy())*zoom), r.layerColor(li), false)
					continue
				}
				src := tileset.SourceRect(gid)
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx())*zoom, float64(dst.Dy())/float64(src.Dy())*zoom)
				op.GeoM.Translate(float64(sx), float64(sy))
				screen.DrawImage(img.SubImage(src).(*ebiten.Image), op)
			}
		}
	}
}

func (r *TileRenderer) layerColor(i int) color.Color {
	if i < len(r.colors) {
		return r.colors[i]
	}
	return color.White
}

func (r *TileRenderer) image(path string) *ebiten.Image {
	if img, ok := r.images[path]; ok {
		return img
	}
	var img *ebiten.Image
	if r.load != nil {
		var err error
		img, err = r.load(path)
		if err != nil {
			r.log.WithError(err).WithField("image", path).Warn("tileset image unavailable; using layer colour")
			img = nil
		}
	}
	r.images[path] = img
	return img
}
