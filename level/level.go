package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileshooter/common"
)

// ErrLayerNotFound is returned when a level has no layer with the requested name.
var ErrLayerNotFound = errors.New("level: layer not found")

// Level represents a tile map stored as JSON.
type Level struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tile_size,omitempty"`
	// Layers is a slice of layers. Each layer is a flat array of tile ids of
	// length Width*Height (row-major). Layer 0 is drawn first (bottom).
	Layers [][]int `json:"layers,omitempty"`

	// LayerMeta holds per-layer metadata such as the layer's name, whether
	// it is drawn, and the fallback colour for its tiles.
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	Tilesets []Tileset `json:"tilesets,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`

	Entities []PlacedEntity `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name       string `json:"name"`
	HasPhysics bool   `json:"has_physics"`
	Hidden     bool   `json:"hidden,omitempty"`
	Color      string `json:"color"`
}

// Tileset maps a contiguous range of tile ids, starting at FirstGID, onto an
// image sliced into TileW x TileH cells.
type Tileset struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	FirstGID int    `json:"first_gid"`
	TileW    int    `json:"tile_w"`
	TileH    int    `json:"tile_h"`
	ImageW   int    `json:"image_w"`
	ImageH   int    `json:"image_h"`
}

// PlacedEntity is an object placed in the level, positioned in tile coordinates.
type PlacedEntity struct {
	Type  string         `json:"type"`
	Name  string         `json:"name,omitempty"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// LoadLevel loads a level from a JSON file at path.
func LoadLevel(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// LoadLevelFromFS loads a level JSON from an fs.FS (e.g. embedded levels).
func LoadLevelFromFS(fsys fs.FS, path string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", clean, err)
	}
	return Parse(b)
}

// Parse decodes level JSON and fills in missing layer metadata.
func Parse(b []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}

	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = common.DefaultTileSize
	}

	// Ensure layer meta exists for each layer.
	if len(lvl.LayerMeta) < len(lvl.Layers) {
		meta := make([]LayerMeta, len(lvl.Layers))
		for i := range meta {
			if i < len(lvl.LayerMeta) {
				meta[i] = lvl.LayerMeta[i]
			} else {
				meta[i] = LayerMeta{Name: fmt.Sprintf("layer%d", i), Color: "#3c78ff"}
			}
		}
		lvl.LayerMeta = meta
	}
	return &lvl, nil
}

// LayerIndex returns the index of the named layer or -1.
func (l *Level) LayerIndex(name string) int {
	if l == nil {
		return -1
	}
	for i, meta := range l.LayerMeta {
		if i < len(l.Layers) && meta.Name == name {
			return i
		}
	}
	return -1
}

// LayerByName returns the tiles of the named layer.
func (l *Level) LayerByName(name string) ([]int, error) {
	idx := l.LayerIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
	}
	return l.Layers[idx], nil
}

// PhysicsLayer returns the name of the first layer flagged has_physics.
func (l *Level) PhysicsLayer() (string, bool) {
	if l == nil {
		return "", false
	}
	for i, meta := range l.LayerMeta {
		if i < len(l.Layers) && meta.HasPhysics {
			return meta.Name, true
		}
	}
	return "", false
}

// LayerVisible reports whether layer i should be drawn.
func (l *Level) LayerVisible(i int) bool {
	if l == nil || i < 0 || i >= len(l.Layers) {
		return false
	}
	if len(l.Layers[i]) != l.Width*l.Height {
		// malformed layer
		return false
	}
	return i >= len(l.LayerMeta) || !l.LayerMeta[i].Hidden
}

// TileAt returns the tile id on layer at x,y (0 if out of range).
func (l *Level) TileAt(layer, x, y int) int {
	if l == nil || layer < 0 || layer >= len(l.Layers) {
		return 0
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	tiles := l.Layers[layer]
	idx := y*l.Width + x
	if idx >= len(tiles) {
		return 0
	}
	return tiles[idx]
}

// TilesetForTile returns the tileset owning gid. Tilesets are assumed to be
// ordered by ascending FirstGID. Returns nil for gid 0 or when no tileset
// matches.
func (l *Level) TilesetForTile(gid int) *Tileset {
	if l == nil || gid <= 0 {
		return nil
	}
	for i := len(l.Tilesets) - 1; i >= 0; i-- {
		ts := &l.Tilesets[i]
		if gid >= ts.FirstGID {
			return ts
		}
	}
	return nil
}

// SourceRect returns the region of the tileset image holding gid.
func (ts *Tileset) SourceRect(gid int) image.Rectangle {
	if ts == nil || ts.TileW <= 0 || ts.TileH <= 0 {
		return image.Rectangle{}
	}
	cols := ts.ImageW / ts.TileW
	if cols <= 0 {
		cols = 1
	}
	idx := gid - ts.FirstGID
	row := idx / cols
	col := idx - row*cols
	x := col * ts.TileW
	y := row * ts.TileH
	return image.Rect(x, y, x+ts.TileW, y+ts.TileH)
}

// DestRect returns the world-space rectangle covered by tile x,y of this tileset.
func (ts *Tileset) DestRect(x, y int) image.Rectangle {
	if ts == nil {
		return image.Rectangle{}
	}
	return image.Rect(x*ts.TileW, y*ts.TileH, (x+1)*ts.TileW, (y+1)*ts.TileH)
}

// SpawnPosition returns the centre of the player's spawn cell in world pixels.
// An out-of-bounds spawn is clamped to cell (0,0).
func (l *Level) SpawnPosition() cp.Vector {
	if l == nil {
		return cp.Vector{}
	}
	x := l.SpawnX
	y := l.SpawnY
	if x < 0 || x >= l.Width {
		x = 0
	}
	if y < 0 || y >= l.Height {
		y = 0
	}
	ts := float64(l.TileSize)
	return cp.Vector{X: float64(x)*ts + ts/2, Y: float64(y)*ts + ts/2}
}

// PixelSize returns the level extents in world pixels.
func (l *Level) PixelSize() (int, int) {
	if l == nil {
		return 0, 0
	}
	return l.Width * l.TileSize, l.Height * l.TileSize
}
