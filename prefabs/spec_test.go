package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOverrideDir(t *testing.T, dir string) {
	t.Helper()
	prev := OverrideDir
	OverrideDir = dir
	t.Cleanup(func() { OverrideDir = prev })
}

func TestEmbeddedSpecs(t *testing.T) {
	withOverrideDir(t, t.TempDir())

	sim, err := LoadSimSpec()
	require.NoError(t, err)
	assert.Equal(t, "collision", sim.CollisionLayer)
	assert.Equal(t, "walls1", sim.WallLayer)
	assert.Equal(t, 32, sim.PathQueue.BatchDivisor)

	enemy, err := LoadEnemySpec()
	require.NoError(t, err)
	assert.Equal(t, "grunt", enemy.Name)
	assert.Greater(t, enemy.EngageDistance, 0.0)
	assert.Equal(t, "enemy.tengo", enemy.Script)

	player, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, 10, player.Health)

	bullet, err := LoadBulletSpec()
	require.NoError(t, err)
	assert.Greater(t, bullet.Lifetime, 0.0)

	src, err := LoadScript(enemy.Script)
	require.NoError(t, err)
	assert.Contains(t, string(src), "engage_distance")
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	withOverrideDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bullet.yaml"), []byte("speed: 999\n"), 0o644))

	bullet, err := LoadBulletSpec()
	require.NoError(t, err)
	assert.Equal(t, 999.0, bullet.Speed)
	assert.Zero(t, bullet.Size, "override replaces the whole file")
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	withOverrideDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sim.yaml"), []byte("fov: [1, 2\n"), 0o644))

	_, err := LoadSimSpec()
	assert.ErrorContains(t, err, "unmarshal sim.yaml")

	_, err = LoadSpec[SimSpec]("missing.yaml")
	assert.ErrorContains(t, err, "load missing.yaml")
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, prefab, script string
	}{
		{"enemy.tengo", "enemy.tengo", "scripts/enemy.tengo"},
		{"scripts/enemy.tengo", "scripts/enemy.tengo", "scripts/enemy.tengo"},
		{"prefabs/scripts/enemy.tengo", "scripts/enemy.tengo", "scripts/enemy.tengo"},
		{"prefabs/enemy.yaml", "enemy.yaml", "scripts/enemy.yaml"},
		{"", "", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.prefab, cleanPrefabPath(c.in))
			assert.Equal(t, c.script, cleanScriptPath(c.in))
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	base := EnemySpec{Name: "grunt", Speed: 56, Health: 3, Color: "crimson"}

	cases := []struct {
		name  string
		props map[string]any
		want  EnemySpec
	}{
		{"none", nil, base},
		{"speed", map[string]any{"speed": 48}, EnemySpec{Name: "grunt", Speed: 48, Health: 3, Color: "crimson"}},
		{"several", map[string]any{"health": 5, "color": "gold"}, EnemySpec{Name: "grunt", Speed: 56, Health: 5, Color: "gold"}},
		{"unknown_key", map[string]any{"wings": true}, base},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ApplyOverrides(base, c.props)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := ApplyOverrides(base, map[string]any{"speed": "fast"})
	assert.Error(t, err)
}
