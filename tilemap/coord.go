package tilemap

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TileCoord addresses one cell of a tile grid.
type TileCoord struct {
	X int
	Y int
}

// TileCenter returns the world-space centre of tile c.
func TileCenter(c TileCoord, tileSize float64) cp.Vector {
	half := tileSize * 0.5
	return cp.Vector{
		X: float64(c.X)*tileSize + half,
		Y: float64(c.Y)*tileSize + half,
	}
}

// WorldToTile returns the tile containing world point v.
func WorldToTile(v cp.Vector, tileSize float64) TileCoord {
	return TileCoord{
		X: int(math.Floor(v.X / tileSize)),
		Y: int(math.Floor(v.Y / tileSize)),
	}
}

// TileBounds returns the world-space box of tile c.
func TileBounds(c TileCoord, tileSize float64) cp.BB {
	x0 := float64(c.X) * tileSize
	y0 := float64(c.Y) * tileSize
	return cp.BB{L: x0, B: y0, R: x0 + tileSize, T: y0 + tileSize}
}

func tilePathToWorld(path []TileCoord, tileSize float64) []cp.Vector {
	if len(path) == 0 {
		return nil
	}
	out := make([]cp.Vector, 0, len(path))
	for _, p := range path {
		out = append(out, TileCenter(p, tileSize))
	}
	return out
}
