package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheFellow/smokesim/pkg/fluid"
	"github.com/TheFellow/smokesim/pkg/settings"
)

func TestSciColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 255, A: 255}, sciColor(0, 0, 1))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 255, A: 255}, sciColor(0.25, 0, 1))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 0, A: 255}, sciColor(0.75, 0, 1))

	top := sciColor(1, 0, 1)
	assert.Equal(t, uint8(255), top.R)
	assert.Equal(t, uint8(0), top.B)

	// out of range clamps, a flat range sits in the middle
	assert.Equal(t, sciColor(0, 0, 1), sciColor(-5, 0, 1))
	assert.Equal(t, sciColor(1, 0, 1), sciColor(9, 0, 1))
	assert.Equal(t, sciColor(0.5, 0, 1), sciColor(3, 2, 2))
}

func TestColorRange(t *testing.T) {
	f := fluid.ScalarField{MinValue: -3, MaxValue: 2}

	lo, hi := colorRange(settings.DisplayDivergence, f)
	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 3.0, hi)

	lo, hi = colorRange(settings.DisplaySpeed, f)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)

	lo, hi = colorRange(settings.DisplaySmoke, fluid.ScalarField{MaxValue: 0.2})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestWritePixelsFlipsRows(t *testing.T) {
	g, err := fluid.New(4, 3, 1.0)
	require.NoError(t, err)
	g.SetSmoke(1, 1, 1)
	g.SetSmoke(1, 2, 0)

	pix := make([]byte, 4*g.NX()*g.NY())
	writePixels(pix, g, settings.DisplaySmoke, g.Smoke())

	at := func(x, y int) color.RGBA {
		p := 4 * (y*g.NX() + x)
		return color.RGBA{R: pix[p], G: pix[p+1], B: pix[p+2], A: pix[p+3]}
	}
	// grid row 1 is the middle image row; the ring is solid
	assert.Equal(t, sciColor(1, 0, 1), at(1, 1))
	assert.Equal(t, sciColor(0, 0, 1), at(2, 1))
	assert.Equal(t, solidColor, at(0, 1))
	assert.Equal(t, solidColor, at(1, 0))
	assert.Equal(t, solidColor, at(1, 2))
}
