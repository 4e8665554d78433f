package tilemap

// Grid is the blocked/free occupancy of a tile layer. A nil *Grid is the
// "no grid" state: nothing is solid and no path exists.
type Grid struct {
	width   int
	height  int
	blocked []bool
}

// BuildFromLayer marks every nonzero cell of tiles as blocked. It returns nil
// when the layer is missing, does not match width*height, or has no solid
// cell at all.
func BuildFromLayer(tiles []int, width, height int) *Grid {
	if width <= 0 || height <= 0 || len(tiles) != width*height {
		return nil
	}
	blocked := make([]bool, width*height)
	solid := 0
	for i, v := range tiles {
		if v != 0 {
			blocked[i] = true
			solid++
		}
	}
	if solid == 0 {
		return nil
	}
	return &Grid{width: width, height: height, blocked: blocked}
}

func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// InBounds reports whether x,y lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	if g == nil {
		return false
	}
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Blocked reports whether x,y is solid. Out-of-range cells are not solid.
func (g *Grid) Blocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.blocked[y*g.width+x]
}

// Solid is Blocked addressed by TileCoord.
func (g *Grid) Solid(c TileCoord) bool {
	return g.Blocked(c.X, c.Y)
}
