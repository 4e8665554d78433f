package raycast

import (
	"errors"
	"fmt"

	"github.com/milk9111/tileshooter/level"
)

var ErrNoWallLayer = errors.New("raycast: wall layer not found")

// Walls is the tile layer rays are cast against. Nonzero tiles are walls.
type Walls struct {
	tiles    []int
	width    int
	height   int
	tileSize float64
}

// NewWalls selects the named layer of lvl. A missing layer is a
// configuration error wrapping both ErrNoWallLayer and level.ErrLayerNotFound.
func NewWalls(lvl *level.Level, layer string) (*Walls, error) {
	if lvl == nil {
		return nil, fmt.Errorf("raycast: nil level")
	}
	tiles, err := lvl.LayerByName(layer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoWallLayer, err)
	}
	if len(tiles) != lvl.Width*lvl.Height {
		return nil, fmt.Errorf("raycast: layer %q has %d tiles, want %d", layer, len(tiles), lvl.Width*lvl.Height)
	}
	return &Walls{
		tiles:    tiles,
		width:    lvl.Width,
		height:   lvl.Height,
		tileSize: float64(lvl.TileSize),
	}, nil
}

func (w *Walls) TileSize() float64 { return w.tileSize }

func (w *Walls) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.width && y < w.height
}

// At returns the tile id at (x, y), 0 when out of range.
func (w *Walls) At(x, y int) int {
	if !w.inBounds(x, y) {
		return 0
	}
	return w.tiles[y*w.width+x]
}
