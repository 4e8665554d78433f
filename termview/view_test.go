package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/system"
)

func newViewer(t *testing.T, w, h int) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	prev := prefabs.OverrideDir
	prefabs.OverrideDir = t.TempDir()
	t.Cleanup(func() { prefabs.OverrideDir = prev })

	opts, err := system.LoadOptions()
	require.NoError(t, err)
	world := system.NewWorld(opts)
	require.NoError(t, world.LoadNamed("arena"))

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	v := New(screen, world)
	nl, _ := test.NewNullLogger()
	v.SetLogger(nl)
	return v, screen
}

func cell(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func count(s tcell.Screen, want rune) int {
	w, h := s.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cell(s, x, y) == want {
				n++
			}
		}
	}
	return n
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDrawWholeMap(t *testing.T) {
	v, screen := newViewer(t, 40, 20)
	v.Draw()

	ox, oy := v.Origin()
	assert.Equal(t, 0, ox)
	assert.Equal(t, 0, oy)

	assert.Equal(t, GlyphWall, cell(screen, 0, 0))
	assert.Equal(t, GlyphFloor, cell(screen, 1, 1))
	assert.Equal(t, GlyphWall, cell(screen, 4, 3))
	assert.Equal(t, GlyphPlayer, cell(screen, 10, 10))
	assert.Equal(t, GlyphEnemy, cell(screen, 2, 2))
	assert.Equal(t, 3, count(screen, GlyphEnemy))
	assert.Equal(t, 'h', cell(screen, 0, 19))
	assert.Equal(t, ' ', cell(screen, 25, 5), "cells right of the map stay empty")
}

func TestOriginFollowsPlayer(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		ox, oy int
	}{
		{"fits", 40, 20, 0, 0},
		{"centred", 10, 6, 5, 8},
		{"small screen", 4, 3, 8, 9},
		{"fits vertically", 10, 20, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newViewer(t, tt.w, tt.h)
			ox, oy := v.Origin()
			assert.Equal(t, tt.ox, ox)
			assert.Equal(t, tt.oy, oy)
		})
	}
}

func TestPlayerDrawnRelativeToOrigin(t *testing.T) {
	v, screen := newViewer(t, 10, 6)
	v.Draw()
	assert.Equal(t, GlyphPlayer, cell(screen, 5, 2))
}

func TestPathsOverlayAndToggle(t *testing.T) {
	v, screen := newViewer(t, 40, 20)
	for range 5 {
		require.True(t, v.Advance(1.0/60))
	}
	v.Draw()
	assert.Positive(t, count(screen, GlyphPath))

	require.True(t, v.HandleEvent(key('p')))
	assert.False(t, v.ShowPaths())
	v.Draw()
	assert.Zero(t, count(screen, GlyphPath))
}

func TestPauseAndStep(t *testing.T) {
	v, _ := newViewer(t, 40, 20)

	require.True(t, v.HandleEvent(key(' ')))
	assert.True(t, v.Paused())
	assert.False(t, v.Advance(1.0/60))
	assert.Equal(t, 0, v.Ticks())
	assert.Contains(t, v.Status(), "[paused]")

	v.HandleEvent(key('.'))
	assert.True(t, v.Advance(1.0/60))
	assert.False(t, v.Advance(1.0/60))
	assert.Equal(t, 1, v.Ticks())
}

func TestArrowKeyMovesPlayerOneTick(t *testing.T) {
	v, _ := newViewer(t, 40, 20)
	start := v.world.Player.Pos

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	v.Advance(0.1)
	moved := v.world.Player.Pos
	assert.Greater(t, moved.X, start.X)

	v.Advance(0.1)
	assert.Equal(t, moved, v.world.Player.Pos)
}

func TestQuitKeys(t *testing.T) {
	v, _ := newViewer(t, 40, 20)
	assert.False(t, v.HandleEvent(key('q')))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, v.HandleEvent(key('x')))
}
