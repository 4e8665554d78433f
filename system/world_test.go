package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/level"
	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/tilemap"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	prev := prefabs.OverrideDir
	prefabs.OverrideDir = dir
	t.Cleanup(func() { prefabs.OverrideDir = prev })

	opts, err := LoadOptions()
	require.NoError(t, err)
	return opts
}

const fieldLevel = `{
	"width": 8, "height": 3, "tile_size": 32,
	"layers": [[0,0,0,0,0,0,0,0, 0,0,0,0,0,0,0,0, 0,0,0,0,0,0,0,0]],
	"layer_meta": [{"name": "collision", "has_physics": true}],
	"spawn_x": 1, "spawn_y": 1,
	"entities": [
		{"type": "enemy", "name": "target", "x": 6, "y": 1},
		{"type": "dragon", "name": "ignored", "x": 3, "y": 0}
	]
}`

func parseLevel(t *testing.T, src string) *level.Level {
	t.Helper()
	lvl, err := level.Parse([]byte(src))
	require.NoError(t, err)
	return lvl
}

func TestWorldLoadArena(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.LoadNamed("arena"))

	require.NotNil(t, w.Player)
	assert.Equal(t, cp.Vector{X: 336, Y: 336}, w.Player.Pos)
	assert.NotNil(t, w.Map.Grid())
	assert.Len(t, w.Enemies(), 3)
	assert.Equal(t, 4, w.Entities.Len())
}

func TestWorldThrottlesPathRequests(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.LoadNamed("arena"))

	w.Update(1.0 / 60)
	pending := 0
	for _, e := range w.Enemies() {
		if e.PathPending() {
			pending++
		}
	}
	assert.Equal(t, 2, pending, "one of three requests drained on the first tick")
	assert.Equal(t, 2, w.Map.Queue().Pending())

	w.Update(1.0 / 60)
	assert.Equal(t, 1, w.Map.Queue().Pending())
	w.Update(1.0 / 60)
	assert.Equal(t, 0, w.Map.Queue().Pending())
	for _, e := range w.Enemies() {
		assert.False(t, e.PathPending())
		assert.NotEmpty(t, e.Path())
	}
}

func TestWorldSkipsUnknownKinds(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.Load(parseLevel(t, fieldLevel)))

	assert.Len(t, w.Enemies(), 1)
	assert.Nil(t, w.Map.Grid(), "empty collision layer disables pathing")
	assert.Equal(t, []string{KindEnemy}, w.Registry().Kinds())
}

func TestWorldLoadErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(o *Options)
		want   error
	}{
		{"missing_collision_layer", func(o *Options) { o.Sim.CollisionLayer = "nope" }, level.ErrLayerNotFound},
		{"missing_script", func(o *Options) { o.Enemy.Script = "missing.tengo" }, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := testOptions(t)
			c.mutate(&opts)
			w := NewWorld(opts)
			err := w.Load(parseLevel(t, fieldLevel))
			require.Error(t, err)
			if c.want != nil {
				assert.True(t, errors.Is(err, c.want))
			}
		})
	}

	w := NewWorld(testOptions(t))
	assert.Error(t, w.LoadNamed("no_such_level"))
}

func TestWorldFailedLoadKeepsPreviousLevel(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.LoadNamed("arena"))
	prevLevel, prevMap, prevPlayer := w.Level, w.Map, w.Player

	w.opts.Enemy.Script = "missing.tengo"
	require.Error(t, w.Load(parseLevel(t, fieldLevel)))

	assert.Same(t, prevLevel, w.Level)
	assert.Same(t, prevMap, w.Map)
	assert.Same(t, prevPlayer, w.Player)
	assert.Equal(t, 4, w.Entities.Len())
	assert.Len(t, w.Enemies(), 3)

	w.Update(1.0 / 60)
	assert.Positive(t, w.Map.Queue().Pending(), "previous level keeps simulating")
}

func TestWorldFallsBackToPhysicsLayer(t *testing.T) {
	opts := testOptions(t)
	opts.Sim.CollisionLayer = ""
	w := NewWorld(opts)
	require.NoError(t, w.LoadNamed("arena"))
	require.NotNil(t, w.Map.Grid())
	assert.True(t, w.Map.Grid().Blocked(0, 0))
}

func TestWorldTarget(t *testing.T) {
	w := NewWorld(testOptions(t))
	assert.Nil(t, w.Target())

	require.NoError(t, w.Load(parseLevel(t, fieldLevel)))
	require.NotNil(t, w.Target())
	assert.Equal(t, w.Player.Pos, w.Target().Position())

	w.Player.TakeDamage(1000, cp.Vector{X: 1})
	assert.Nil(t, w.Target())
}

func TestWorldPlayerShootsEnemy(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.Load(parseLevel(t, fieldLevel)))
	enemies := w.Enemies()
	require.Len(t, enemies, 1)
	enemy := enemies[0]
	start := enemy.Health()

	w.Player.SetControls(entity.Controls{Aim: enemy.Pos, HasAim: true, Fire: true})
	for i := 0; i < 60; i++ {
		w.Update(1.0 / 60)
	}

	assert.Less(t, enemy.Health(), start)
	assert.Equal(t, tilemap.TileCoord{X: 6, Y: 1}, w.Map.TilePosition(enemy.Pos), "no grid, no route, enemy stays put")
}

func TestWorldReloadPrefab(t *testing.T) {
	opts := testOptions(t)
	w := NewWorld(opts)

	require.NoError(t, os.WriteFile(filepath.Join(prefabs.OverrideDir, "enemy.yaml"), []byte("speed: 5\nhealth: 9\n"), 0o644))
	require.NoError(t, w.ReloadPrefab("enemy.yaml"))
	assert.Equal(t, 5.0, w.Options().Enemy.Speed)
	assert.Equal(t, 9, w.Options().Enemy.Health)

	assert.NoError(t, w.ReloadPrefab("enemy.tengo"))
	assert.ErrorIs(t, w.ReloadPrefab("mystery.yaml"), ErrUnknownPrefab)

	require.NoError(t, os.WriteFile(filepath.Join(prefabs.OverrideDir, "player.yaml"), []byte("speed: ["), 0o644))
	assert.Error(t, w.ReloadPrefab("player.yaml"))
}

func TestWorldSetModeCarriesAcrossLoads(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.Load(parseLevel(t, fieldLevel)))
	w.SetMode(entity.ModeFirstPerson)
	assert.Equal(t, entity.ModeFirstPerson, w.Player.Mode())

	require.NoError(t, w.LoadNamed("test_fps"))
	assert.Equal(t, entity.ModeFirstPerson, w.Player.Mode())
}

func TestWorldSetShowPaths(t *testing.T) {
	w := NewWorld(testOptions(t))
	require.NoError(t, w.LoadNamed("arena"))

	w.SetShowPaths(true)
	assert.True(t, w.Options().Sim.ShowPaths)

	require.NoError(t, w.LoadNamed("arena"))
	assert.True(t, w.Options().Sim.ShowPaths, "kept across loads")
}
