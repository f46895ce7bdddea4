// Package plotwin draws pycalc figures in a desktop window.
package plotwin

import (
	"image/color"
	"math"

	"github.com/pb1729/pycalc"
)

const (
	width  = 640
	height = 480
	margin = 40
)

// palette cycles per curve.
var palette = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
}

func curveColor(i int) color.RGBA { return palette[i%len(palette)] }

type point struct{ X, Y float32 }

// frame maps data coordinates to screen pixels inside the margins.
type frame struct {
	xmin, xmax, ymin, ymax float64
	w, h                   int
}

func newFrame(fig *pycalc.Figure, w, h int) frame {
	xmin, xmax, ymin, ymax := fig.Bounds()
	return frame{xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax, w: w, h: h}
}

func (f frame) toScreen(x, y float64) point {
	pw := float64(f.w - 2*margin)
	ph := float64(f.h - 2*margin)
	sx := margin + (x-f.xmin)/(f.xmax-f.xmin)*pw
	sy := float64(f.h-margin) - (y-f.ymin)/(f.ymax-f.ymin)*ph
	return point{float32(sx), float32(sy)}
}

// segments splits a curve into drawable polylines; NaN and Inf samples break
// the line.
func (f frame) segments(c pycalc.Curve) [][]point {
	var out [][]point
	var cur []point
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for i := range c.X {
		if i >= len(c.Y) {
			break
		}
		x, y := c.X[i], c.Y[i]
		if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsInf(x, 0) {
			flush()
			continue
		}
		cur = append(cur, f.toScreen(x, y))
	}
	flush()
	return out
}

// yAxis returns the screen column of x = 0 when it lies in the window.
func (f frame) yAxis() (float32, bool) {
	return f.toScreen(0, 0).X, f.xmin <= 0 && 0 <= f.xmax
}

// xAxis returns the screen row of y = 0 when it lies in the window.
func (f frame) xAxis() (float32, bool) {
	return f.toScreen(0, 0).Y, f.ymin <= 0 && 0 <= f.ymax
}
