package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/level"
	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/tilemap"
)

const KindEnemy = "enemy"

func (w *World) registerDefaults() {
	w.registry.Register(KindEnemy, w.spawnEnemy)
}

// spawnPlaced builds every placement through the registry. Unknown kinds are
// skipped with a warning; constructor failures abort the load.
func (w *World) spawnPlaced(into *entity.Manager, placed []level.PlacedEntity) (int, error) {
	count := 0
	for _, pe := range placed {
		e, err := w.registry.Build(pe)
		if errors.Is(err, entity.ErrUnknownKind) {
			w.log.WithField("type", pe.Type).Warn("skipping unknown entity")
			continue
		}
		if err != nil {
			return count, fmt.Errorf("world: spawn %s: %w", pe.Name, err)
		}
		into.AddEntity(e)
		count++
	}
	return count, nil
}

func (w *World) spawnEnemy(pe level.PlacedEntity) (entity.Entity, error) {
	spec, err := prefabs.ApplyOverrides(w.opts.Enemy, pe.Props)
	if err != nil {
		return nil, fmt.Errorf("props: %w", err)
	}
	script, err := w.script(spec.Script)
	if err != nil {
		return nil, err
	}

	pos := tilemap.TileCenter(tilemap.TileCoord{X: pe.X, Y: pe.Y}, w.Map.TileSize())
	return entity.NewEnemy(pos, entity.EnemyOptions{
		Spec:     spec,
		Bullet:   w.opts.Bullet,
		Terrain:  w.Map,
		Targets:  w,
		Spawner:  w,
		Hits:     w,
		Script:   script,
		ShowPath: w.opts.Sim.ShowPaths,
	}), nil
}

// script returns a private copy of the named behaviour script, compiling it
// on first use.
func (w *World) script(name string) (*entity.BehaviorScript, error) {
	if name == "" {
		return nil, nil
	}
	if s, ok := w.scripts[name]; ok {
		return s.Clone(), nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	s, err := entity.NewBehaviorScript(name, src)
	if err != nil {
		return nil, err
	}
	w.scripts[name] = s
	return s.Clone(), nil
}
