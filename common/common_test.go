package common

import (
	"image/color"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#3c78ff", color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}, false},
		{"ff000080", color.NRGBA{R: 0xff, A: 0x80}, false},
		{" #000000 ", color.NRGBA{A: 0xff}, false},
		{"#abc", nil, true},
		{"#gg0000", nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseHexColor(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestBoxes(t *testing.T) {
	a := BoxAt(cp.Vector{X: 10, Y: 10}, 4, 6)
	assert.Equal(t, cp.BB{L: 8, B: 7, R: 12, T: 13}, a)

	b := Translate(a, cp.Vector{X: 3})
	w, h := Overlap(a, b)
	assert.InDelta(t, 1, w, 1e-12)
	assert.InDelta(t, 6, h, 1e-12)
	assert.True(t, Intersects(a, b))

	touching := Translate(a, cp.Vector{X: 4})
	assert.False(t, Intersects(a, touching))
	assert.Equal(t, cp.BB{L: 8, B: 7, R: 16, T: 13}, Union(a, touching))
}

func TestVectors(t *testing.T) {
	d := DirectionFromDegrees(90)
	assert.InDelta(t, 0, d.X, 1e-12)
	assert.InDelta(t, 1, d.Y, 1e-12)
	assert.Equal(t, cp.Vector{}, Normalize(cp.Vector{}))
	assert.InDelta(t, 1, Normalize(cp.Vector{X: 3, Y: 4}).Length(), 1e-12)
	assert.InDelta(t, math.Pi/2, Angle(cp.Vector{Y: 2}), 1e-12)
	assert.Equal(t, -1.0, Sign(-3))
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.InDelta(t, 2.5, Lerp(2, 3, 0.5), 1e-12)
}
