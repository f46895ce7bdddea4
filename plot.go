package pycalc

import (
	"math"

	"fortio.org/log"
)

// PlotSamples is the number of evenly spaced x samples per curve.
const PlotSamples = 256

// PlotAck is the acknowledgement fplot returns once the figure was shown.
const PlotAck = "plot..."

// Curve is one sampled function.
type Curve struct {
	Label string
	X, Y  []float64
}

// Figure is everything a renderer needs to draw one fplot call: curves that
// share a set of axes, the x domain and an optional y clamp.
type Figure struct {
	Curves []Curve
	XLim   [2]float64
	YLim   *[2]float64
}

// Bounds returns the drawing window. X comes from the domain; Y comes from the
// clamp when set, otherwise from the finite samples. Degenerate ranges are
// widened so a renderer can always divide by the span.
func (f *Figure) Bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = f.XLim[0], f.XLim[1]
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if f.YLim != nil {
		ymin, ymax = f.YLim[0], f.YLim[1]
		if ymin > ymax {
			ymin, ymax = ymax, ymin
		}
	} else {
		ymin, ymax = math.Inf(1), math.Inf(-1)
		for _, c := range f.Curves {
			for _, y := range c.Y {
				if math.IsNaN(y) || math.IsInf(y, 0) {
					continue
				}
				ymin = math.Min(ymin, y)
				ymax = math.Max(ymax, y)
			}
		}
		if ymin > ymax {
			ymin, ymax = 0, 1
		}
	}
	if xmax == xmin {
		xmin, xmax = xmin-0.5, xmax+0.5
	}
	if ymax == ymin {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	return xmin, xmax, ymin, ymax
}

// Renderer is the external graphics collaborator. Show owns fig afterwards.
type Renderer interface {
	Show(fig *Figure) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(fig *Figure) error

func (f RendererFunc) Show(fig *Figure) error { return f(fig) }

// ---- natives --------------------------------------------------------------

func registerPlotBuiltins(ip *Interpreter) {
	ip.RegisterNative("fplot",
		[]ParamSpec{{Name: "flst"}, Opt("xlims", List([]Value{Int(0), Num(1)})), Opt("ylims", None)},
		"fplot(flst, xlims=[0, 1.], ylims=None): plot a function of x (string or function) or a list of them",
		func(ip *Interpreter, ctx CallCtx) Value {
			return Str(ip.plot(ctx.MustArg("flst"), ctx.MustArg("xlims"), ctx.MustArg("ylims")))
		})
}

func (ip *Interpreter) plot(flst, xlims, ylims Value) string {
	descs := []Value{flst}
	if flst.Tag == VTList {
		descs = flst.Data.([]Value)
	}
	lo, hi := limitPair("xlims", xlims)
	fig := &Figure{XLim: [2]float64{lo, hi}}

	for _, d := range descs {
		x := linspace(lo, hi, PlotSamples)
		var y Value
		label := ""
		switch d.Tag {
		case VTStr:
			label = d.Data.(string)
			y = ip.evalCurve(label, x)
		case VTFun:
			label = d.Data.(*Fun).Name
			y = ip.apply(d, []Value{Arr(x)}, nil)
		default:
			failf("fplot: cannot plot a %s; pass a string in x or a function", d.Tag)
		}
		fig.Curves = append(fig.Curves, Curve{Label: label, X: x, Y: curveSamples(label, y, len(x))})
		if ylims.Tag != VTNone {
			y0, y1 := limitPair("ylims", ylims)
			fig.YLim = &[2]float64{y0, y1}
		}
	}

	if ip.host.Renderer == nil {
		fail("fplot: no plot renderer available")
	}
	log.LogVf("fplot: %d curve(s) over [%g, %g]", len(fig.Curves), lo, hi)
	if err := ip.host.Renderer.Show(fig); err != nil {
		failf("fplot: %v", err)
	}
	return PlotAck
}

// evalCurve parses a descriptor once and evaluates it with x bound to the
// sample array in a scratch child of Global.
func (ip *Interpreter) evalCurve(src string, x []float64) Value {
	ast, err := ParseExpr(src)
	if err != nil {
		panic(WrapErrorWithSource(err, src))
	}
	env := NewEnv(ip.Global)
	env.Define("x", Arr(x))
	return ip.eval(ast, env)
}

func curveSamples(label string, y Value, n int) []float64 {
	switch y.Tag {
	case VTComplex, VTCArray:
		failf("fplot: %q produced complex values", label)
	case VTArray, VTList:
		ys := asFloats(y, n)
		if len(ys) != n {
			failf("fplot: %q produced %d values for %d samples", label, len(ys), n)
		}
		return append([]float64(nil), ys...)
	}
	if !isReal(y) {
		failf("fplot: %q produced a %s, not numbers", label, y.Tag)
	}
	return asFloats(y, n)
}

func limitPair(name string, v Value) (float64, float64) {
	if v.Tag != VTList && v.Tag != VTArray {
		failf("fplot: %s must be a pair of numbers, got %s", name, v.Tag)
	}
	xs := asFloats(v, -1)
	if len(xs) != 2 {
		failf("fplot: %s must have exactly 2 elements, got %d", name, len(xs))
	}
	return xs[0], xs[1]
}
