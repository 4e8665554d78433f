package entity

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tileshooter/level"
)

func TestRegistryBuild(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register("Enemy", func(p level.PlacedEntity) (Entity, error) {
		return NewEnemy(cp.Vector{X: float64(p.X), Y: float64(p.Y)}, EnemyOptions{}), nil
	})
	r.Register("broken", func(level.PlacedEntity) (Entity, error) { return nil, boom })

	cases := []struct {
		name    string
		kind    string
		wantErr error
	}{
		{"exact", "enemy", nil},
		{"case_insensitive", " ENEMY ", nil},
		{"unknown", "dragon", ErrUnknownKind},
		{"ctor_error", "broken", boom},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := r.Build(level.PlacedEntity{Type: c.kind, X: 3, Y: 4})
			if c.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, c.wantErr))
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			enemy, ok := e.(*Enemy)
			require.True(t, ok)
			assert.Equal(t, cp.Vector{X: 3, Y: 4}, enemy.Pos)
		})
	}

	assert.Equal(t, []string{"broken", "enemy"}, r.Kinds())
	assert.True(t, r.Has("Broken"))
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	_, err := r.Build(level.PlacedEntity{Type: "enemy"})
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.False(t, r.Has("enemy"))
}
