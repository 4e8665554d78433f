package tilemap

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tileshooter/level"
	"github.com/milk9111/tileshooter/logger"
)

// Options tunes the navigation services of a Map.
type Options struct {
	// CollisionLayer names the layer whose nonzero tiles are solid. An empty
	// name disables collision and pathfinding.
	CollisionLayer string
	// BatchDivisor is passed to the path queue (0 selects the default).
	BatchDivisor int
	// MaxSearchNodes bounds each A* search (0 = unlimited).
	MaxSearchNodes int
}

// Map bundles a level with its collision grid and the services built on it.
type Map struct {
	level    *level.Level
	grid     *Grid
	tileSize float64

	finder   *PathFinder
	queue    *PathQueue
	resolver *Resolver

	log logrus.FieldLogger
}

// NewMap builds the grid from the configured collision layer. A missing
// layer name is a configuration error; an all-empty layer only disables
// pathfinding.
func NewMap(lvl *level.Level, opts Options) (*Map, error) {
	if lvl == nil {
		return nil, fmt.Errorf("tilemap: nil level")
	}
	log := logger.For("map")

	var grid *Grid
	if opts.CollisionLayer != "" {
		tiles, err := lvl.LayerByName(opts.CollisionLayer)
		if err != nil {
			return nil, fmt.Errorf("tilemap: collision layer: %w", err)
		}
		grid = BuildFromLayer(tiles, lvl.Width, lvl.Height)
	}
	if grid == nil {
		log.WithField("layer", opts.CollisionLayer).Warn("no solid tiles; pathfinding disabled")
	}

	tileSize := float64(lvl.TileSize)
	finder := NewPathFinder(grid, opts.MaxSearchNodes)
	m := &Map{
		level:    lvl,
		grid:     grid,
		tileSize: tileSize,
		finder:   finder,
		queue:    NewPathQueue(finder, tileSize, opts.BatchDivisor),
		resolver: NewResolver(grid, tileSize),
		log:      log,
	}
	return m, nil
}

func (m *Map) Level() *level.Level { return m.level }
func (m *Map) Grid() *Grid { return m.grid }
func (m *Map) TileSize() float64 { return m.tileSize }
func (m *Map) Queue() *PathQueue { return m.queue }
func (m *Map) Resolver() *Resolver { return m.resolver }
func (m *Map) PathFinder() *PathFinder { return m.finder }

// TilePosition returns the tile under world point v.
func (m *Map) TilePosition(v cp.Vector) TileCoord {
	return WorldToTile(v, m.tileSize)
}

// RequestPath queues a route for scout; the result arrives through
// scout.ReceivePath during a later drain.
func (m *Map) RequestPath(scout Scout, from, to TileCoord) {
	m.queue.Enqueue(scout, from, to)
}

// GetPath resolves a route immediately and returns world waypoints that
// include the start tile. It is meant for debug overlays, not per-frame AI.
func (m *Map) GetPath(from, to TileCoord) []cp.Vector {
	return tilePathToWorld(m.finder.FindPath(from, to), m.tileSize)
}

// Resolve corrects v for body against the collision grid.
func (m *Map) Resolve(body Body, v cp.Vector) cp.Vector {
	return m.resolver.Resolve(body, v)
}

// Move resolves and applies v to mv.
func (m *Map) Move(mv Mover, v cp.Vector) cp.Vector {
	return m.resolver.Move(mv, v)
}

// SolidAt reports whether world point v lies in a solid tile.
func (m *Map) SolidAt(v cp.Vector) bool {
	return m.grid.Solid(m.TilePosition(v))
}

// Update drains one throttled batch of path requests.
func (m *Map) Update(dt float64) {
	m.queue.Update(dt)
}
