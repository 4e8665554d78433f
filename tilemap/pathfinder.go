package tilemap

import (
	"container/heap"
	"math"
)

// PathFinder computes shortest 4-connected routes over a Grid.
type PathFinder struct {
	grid *Grid
	// maxNodes limits the number of expanded nodes; 0 means unlimited.
	maxNodes int
}

// NewPathFinder wraps grid. maxNodes <= 0 disables the search budget.
func NewPathFinder(grid *Grid, maxNodes int) *PathFinder {
	if maxNodes < 0 {
		maxNodes = 0
	}
	return &PathFinder{grid: grid, maxNodes: maxNodes}
}

// Enabled reports whether a grid is attached.
func (pf *PathFinder) Enabled() bool {
	return pf != nil && pf.grid != nil
}

// FindPath returns the tiles from `from` to `to` inclusive, or nil when
// either endpoint is out of bounds, they are identical, the goal is solid,
// or no route exists. Equal-cost candidates are ordered by h, then x, then
// y, so a given grid and endpoint pair always yields the same path.
func (pf *PathFinder) FindPath(from, to TileCoord) []TileCoord {
	if !pf.Enabled() {
		return nil
	}
	g := pf.grid
	if !g.InBounds(from.X, from.Y) || !g.InBounds(to.X, to.Y) {
		return nil
	}
	if from == to {
		return nil
	}
	if g.Blocked(to.X, to.Y) {
		return nil
	}

	gridW := g.width
	open := &openSet{}
	heap.Init(open)

	cameFrom := make([]int, gridW*g.height)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, gridW*g.height)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	closed := make([]bool, gridW*g.height)

	startIdx := from.Y*gridW + from.X
	goalIdx := to.Y*gridW + to.X
	gScore[startIdx] = 0
	h := heuristic(from, to)
	heap.Push(open, &openItem{pos: from, f: h, h: h})

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.Y*gridW + cur.X
		if closed[curIdx] {
			// stale duplicate left behind by a cheaper push
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, gridW, startIdx, goalIdx)
		}

		expanded++
		if pf.maxNodes > 0 && expanded > pf.maxNodes {
			return nil
		}

		for _, n := range neighbors(cur, gridW, g.height) {
			idx := n.Y*gridW + n.X
			if g.blocked[idx] || closed[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + 1
			if tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				nh := heuristic(n, to)
				heap.Push(open, &openItem{pos: n, f: tentativeG + nh, h: nh})
			}
		}
	}

	return nil
}

func reconstructPath(cameFrom []int, gridW int, startIdx, goalIdx int) []TileCoord {
	if goalIdx < 0 || goalIdx >= len(cameFrom) || cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]TileCoord, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, TileCoord{X: cur % gridW, Y: cur / gridW})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func neighbors(p TileCoord, gridW, gridH int) []TileCoord {
	out := make([]TileCoord, 0, 4)
	if p.X > 0 {
		out = append(out, TileCoord{X: p.X - 1, Y: p.Y})
	}
	if p.X < gridW-1 {
		out = append(out, TileCoord{X: p.X + 1, Y: p.Y})
	}
	if p.Y > 0 {
		out = append(out, TileCoord{X: p.X, Y: p.Y - 1})
	}
	if p.Y < gridH-1 {
		out = append(out, TileCoord{X: p.X, Y: p.Y + 1})
	}
	return out
}

func heuristic(a, b TileCoord) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

type openItem struct {
	pos   TileCoord
	f     float64
	h     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	a, b := o[i], o[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.pos.X != b.pos.X {
		return a.pos.X < b.pos.X
	}
	return a.pos.Y < b.pos.Y
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
