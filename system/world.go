package system

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/level"
	"github.com/milk9111/tileshooter/levels"
	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/tilemap"
)

var ErrUnknownPrefab = errors.New("unknown prefab")

// Options carries the tuning a World spawns with.
type Options struct {
	Sim    prefabs.SimSpec
	Enemy  prefabs.EnemySpec
	Player prefabs.PlayerSpec
	Bullet prefabs.BulletSpec
	Mode   entity.ViewMode
}

// LoadOptions reads every spec through prefabs, so on-disk edits win over
// the embedded defaults.
func LoadOptions() (Options, error) {
	var opts Options
	var err error
	if opts.Sim, err = prefabs.LoadSimSpec(); err != nil {
		return opts, err
	}
	if opts.Enemy, err = prefabs.LoadEnemySpec(); err != nil {
		return opts, err
	}
	if opts.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return opts, err
	}
	if opts.Bullet, err = prefabs.LoadBulletSpec(); err != nil {
		return opts, err
	}
	return opts, nil
}

// World is the simulation context: the loaded level, its map services, the
// entity manager and the player everything else targets.
type World struct {
	Level    *level.Level
	Map      *tilemap.Map
	Entities *entity.Manager
	Player   *entity.Player

	opts     Options
	registry *entity.Registry
	scripts  map[string]*entity.BehaviorScript
	log      logrus.FieldLogger
}

// NewWorld creates an empty world. Call Load or LoadNamed before Update.
func NewWorld(opts Options) *World {
	w := &World{
		Entities: entity.NewManager(),
		opts:     opts,
		registry: entity.NewRegistry(),
		scripts:  make(map[string]*entity.BehaviorScript),
		log:      logger.For("world"),
	}
	w.registerDefaults()
	return w
}

func (w *World) Options() Options { return w.opts }
func (w *World) Registry() *entity.Registry { return w.registry }

// LoadNamed loads a level file from disk when name is an existing path and
// from the embedded levels otherwise.
func (w *World) LoadNamed(name string) error {
	var (
		lvl *level.Level
		err error
	)
	if _, statErr := os.Stat(name); statErr == nil {
		lvl, err = level.LoadLevel(name)
	} else {
		lvl, err = levels.Load(name)
	}
	if err != nil {
		return fmt.Errorf("world: load %s: %w", name, err)
	}
	return w.Load(lvl)
}

// Load replaces the current level. Pending path requests and entities of the
// previous level are dropped. On error the previous level stays loaded.
func (w *World) Load(lvl *level.Level) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	m, err := tilemap.NewMap(lvl, tilemap.Options{
		CollisionLayer: w.collisionLayer(lvl),
		BatchDivisor:   w.opts.Sim.PathQueue.BatchDivisor,
		MaxSearchNodes: w.opts.Sim.PathQueue.MaxSearchNodes,
	})
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}

	// constructors read w.Map, so stage the new one while spawning
	prevLevel, prevMap := w.Level, w.Map
	w.Level, w.Map = lvl, m

	entities := entity.NewManager()
	entities.AddSystem(m)
	player := entity.NewPlayer(lvl.SpawnPosition(), entity.PlayerOptions{
		Spec:    w.opts.Player,
		Bullet:  w.opts.Bullet,
		Terrain: m,
		Spawner: w,
		Hits:    w,
		Mode:    w.opts.Mode,
	})
	entities.AddEntity(player)

	spawned, err := w.spawnPlaced(entities, lvl.Entities)
	if err != nil {
		w.Level, w.Map = prevLevel, prevMap
		return err
	}

	if prevMap != nil {
		prevMap.Queue().Clear()
	}
	w.unload()
	w.Entities = entities
	w.Player = player

	w.log.WithFields(logrus.Fields{
		"width":    lvl.Width,
		"height":   lvl.Height,
		"entities": spawned,
		"pathing":  m.PathFinder().Enabled(),
	}).Info("level loaded")
	return nil
}

// collisionLayer is the configured layer, or the level's first has_physics
// layer when none is configured.
func (w *World) collisionLayer(lvl *level.Level) string {
	if name := w.opts.Sim.CollisionLayer; name != "" {
		return name
	}
	name, _ := lvl.PhysicsLayer()
	return name
}

func (w *World) unload() {
	if w.Entities != nil {
		w.Entities.Clear()
	}
	w.Player = nil
}

// Update advances the simulation by one tick.
func (w *World) Update(dt float64) {
	if w == nil || w.Entities == nil {
		return
	}
	w.Entities.Update(dt)
}

// Draw renders every entity through view.
func (w *World) Draw(screen *ebiten.Image, view entity.View) {
	if w == nil || w.Entities == nil {
		return
	}
	w.Entities.Draw(screen, view)
}

// AddEntity spawns e into the current level.
func (w *World) AddEntity(e entity.Entity) {
	w.Entities.AddEntity(e)
}

func (w *World) Hittables() []entity.Hittable {
	return w.Entities.Hittables()
}

// Target returns the live player, or nil.
func (w *World) Target() entity.Target {
	if w == nil || w.Player == nil || w.Player.Destroyed() {
		return nil
	}
	return w.Player
}

// Enemies returns the enemies still alive.
func (w *World) Enemies() []*entity.Enemy {
	var out []*entity.Enemy
	for _, e := range w.Entities.Entities() {
		if en, ok := e.(*entity.Enemy); ok && !en.Destroyed() {
			out = append(out, en)
		}
	}
	return out
}

// SetMode switches the player's view mode and remembers it for later loads.
func (w *World) SetMode(m entity.ViewMode) {
	w.opts.Mode = m
	if w.Player != nil {
		w.Player.SetMode(m)
	}
}

// SetShowPaths toggles path overlays on live enemies and on later spawns.
func (w *World) SetShowPaths(on bool) {
	w.opts.Sim.ShowPaths = on
	for _, e := range w.Enemies() {
		e.SetShowPath(on)
	}
}

// ReloadPrefab re-reads the spec or script called name. Changes apply to
// entities spawned afterwards.
func (w *World) ReloadPrefab(name string) error {
	var err error
	switch name {
	case "sim.yaml":
		w.opts.Sim, err = prefabs.LoadSimSpec()
	case "enemy.yaml":
		w.opts.Enemy, err = prefabs.LoadEnemySpec()
	case "player.yaml":
		w.opts.Player, err = prefabs.LoadPlayerSpec()
	case "bullet.yaml":
		w.opts.Bullet, err = prefabs.LoadBulletSpec()
	default:
		if !strings.HasSuffix(name, ".tengo") {
			return fmt.Errorf("world: %w: %s", ErrUnknownPrefab, name)
		}
		delete(w.scripts, name)
	}
	if err != nil {
		return fmt.Errorf("world: reload %s: %w", name, err)
	}
	w.log.WithField("prefab", name).Info("prefab reloaded")
	return nil
}
