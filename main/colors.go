package main

import (
	"image/color"
	"math"

	"github.com/TheFellow/smokesim/pkg/fluid"
	"github.com/TheFellow/smokesim/pkg/settings"
)

var solidColor = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}

// sciColor maps val in [lo, hi] onto a blue-cyan-green-yellow-red ramp.
func sciColor(val, lo, hi float64) color.RGBA {
	span := hi - lo
	if span <= 0 {
		val = 0.5
	} else {
		val = (min(max(val, lo), hi) - lo) / span
	}
	val = min(val, 0.9999)

	const m = 0.25
	band := math.Floor(val / m)
	s := (val - band*m) / m

	var r, g, b float64
	switch band {
	case 0:
		r, g, b = 0, s, 1
	case 1:
		r, g, b = 0, 1, 1-s
	case 2:
		r, g, b = s, 1, 0
	default:
		r, g, b = 1, 1-s, 0
	}

	return color.RGBA{
		R: uint8(255 * r),
		G: uint8(255 * g),
		B: uint8(255 * b),
		A: 0xff,
	}
}

// colorRange picks the ramp bounds for a display. Signed quantities are
// centred on zero; smoke never shows less than [0, 1].
func colorRange(d settings.Display, f fluid.ScalarField) (float64, float64) {
	switch d {
	case settings.DisplayDivergence, settings.DisplayVorticity:
		m := max(-f.MinValue, f.MaxValue)
		return -m, m
	case settings.DisplaySpeed:
		return 0, f.MaxValue
	default:
		return 0, max(1, f.MaxValue)
	}
}

// cellColor returns the colour of cell (i, j).
func cellColor(g *fluid.Grid, f fluid.ScalarField, i, j int, lo, hi float64) color.RGBA {
	if g.IsSolid(i, j) {
		return solidColor
	}
	return sciColor(f.At(i, j), lo, hi)
}

// writePixels fills an RGBA buffer of NX*NY pixels. Row 0 of the grid is
// the bottom of the image.
func writePixels(pix []byte, g *fluid.Grid, d settings.Display, f fluid.ScalarField) {
	lo, hi := colorRange(d, f)
	nx, ny := g.NX(), g.NY()
	for i := 0; i < ny; i++ {
		row := ny - 1 - i
		for j := 0; j < nx; j++ {
			c := cellColor(g, f, i, j, lo, hi)
			p := 4 * (row*nx + j)
			pix[p] = c.R
			pix[p+1] = c.G
			pix[p+2] = c.B
			pix[p+3] = c.A
		}
	}
}
