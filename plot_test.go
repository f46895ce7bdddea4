package pycalc

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

// recorder is a Renderer that keeps every figure it is shown.
type recorder struct {
	figs []*Figure
	err  error
}

func (r *recorder) Show(fig *Figure) error {
	r.figs = append(r.figs, fig)
	return r.err
}

func plotInterpreter(r Renderer) *Interpreter {
	return NewInterpreter(Host{Out: &bytes.Buffer{}, Renderer: r})
}

func Test_Fplot_StringDescriptor_DefaultDomain(t *testing.T) {
	rec := &recorder{}
	ip := plotInterpreter(rec)
	wantStr(t, mustEval(t, ip, "fplot('x**2')"), PlotAck)

	if len(rec.figs) != 1 || len(rec.figs[0].Curves) != 1 {
		t.Fatalf("figures = %+v", rec.figs)
	}
	c := rec.figs[0].Curves[0]
	if len(c.X) != PlotSamples || len(c.Y) != PlotSamples {
		t.Fatalf("samples = %d/%d", len(c.X), len(c.Y))
	}
	if c.X[0] != 0 || c.X[PlotSamples-1] != 1 || c.Y[PlotSamples-1] != 1 {
		t.Fatalf("endpoints x=%v..%v y_end=%v", c.X[0], c.X[PlotSamples-1], c.Y[PlotSamples-1])
	}
	if c.Label != "x**2" {
		t.Fatalf("label = %q", c.Label)
	}
	if rec.figs[0].YLim != nil {
		t.Fatalf("unexpected y clamp")
	}
}

func Test_Fplot_ListOfDescriptors_SharedFigure(t *testing.T) {
	rec := &recorder{}
	ip := plotInterpreter(rec)
	mustExec(t, ip, "g(t) = 2*t")
	mustExec(t, ip, "fplot(['sin(x)', g, lambda x: 3], xlims=[0, 2], ylims=[-1, 5])")

	if len(rec.figs) != 1 {
		t.Fatalf("want one figure, got %d", len(rec.figs))
	}
	fig := rec.figs[0]
	if len(fig.Curves) != 3 {
		t.Fatalf("curves = %d", len(fig.Curves))
	}
	if fig.XLim != [2]float64{0, 2} {
		t.Fatalf("xlim = %v", fig.XLim)
	}
	if fig.YLim == nil || *fig.YLim != [2]float64{-1, 5} {
		t.Fatalf("ylim = %v", fig.YLim)
	}
	if fig.Curves[1].Label != "g" || fig.Curves[1].Y[PlotSamples-1] != 4 {
		t.Fatalf("function curve = %q ending %v", fig.Curves[1].Label, fig.Curves[1].Y[PlotSamples-1])
	}
	for _, y := range fig.Curves[2].Y {
		if y != 3 {
			t.Fatalf("scalar result not broadcast: %v", y)
		}
	}
}

func Test_Fplot_StringSeesGlobals_ButNotLeakX(t *testing.T) {
	rec := &recorder{}
	ip := plotInterpreter(rec)
	mustExec(t, ip, "k = 10")
	mustEval(t, ip, "fplot('k*x')")
	if got := rec.figs[0].Curves[0].Y[PlotSamples-1]; got != 10 {
		t.Fatalf("k*x at 1 = %v", got)
	}
	if _, ok := ip.Global.Lookup("x"); ok {
		t.Fatalf("sample variable leaked into Global")
	}
}

func Test_Fplot_ComplexAndComparisonDescriptors(t *testing.T) {
	rec := &recorder{}
	ip := plotInterpreter(rec)
	mustEval(t, ip, "fplot(['Re(exp(i*pi*x))', '(x > 0.5)*1'])")
	c := rec.figs[0].Curves
	if math.Abs(c[0].Y[0]-1) > 1e-12 || math.Abs(c[0].Y[PlotSamples-1]+1) > 1e-12 {
		t.Fatalf("Re(exp(i*pi*x)) ends = %v, %v", c[0].Y[0], c[0].Y[PlotSamples-1])
	}
	if c[1].Y[0] != 0 || c[1].Y[PlotSamples-1] != 1 {
		t.Fatalf("step ends = %v, %v", c[1].Y[0], c[1].Y[PlotSamples-1])
	}
}

func Test_Fplot_Faults(t *testing.T) {
	cases := map[string]string{
		"fplot('x +')":                 "expected expression after '+'",
		"fplot(lambda x: 1j)":          "produced complex values",
		"fplot('x*1j')":                "produced complex values",
		"fplot(3)":                     "cannot plot a int",
		"fplot('x', xlims=[0, 1, 2])":  "exactly 2 elements",
		"fplot('x', xlims=5)":          "pair of numbers",
		"fplot(lambda x: 'a')":         "not numbers",
		"fplot(lambda x: vec(1, 2))":   "produced 2 values",
		"fplot('x', ylims=['a', 'b'])": "cannot convert str element",
	}
	for src, want := range cases {
		rec := &recorder{}
		_, err := plotInterpreter(rec).Eval(src)
		wantFault(t, err, want)
		if len(rec.figs) != 0 {
			t.Fatalf("%q: renderer called despite fault", src)
		}
	}
}

func Test_Fplot_RendererMissingOrFailing(t *testing.T) {
	_, err := NewInterpreter(Host{Out: &bytes.Buffer{}}).Eval("fplot('x')")
	wantFault(t, err, "no plot renderer available")

	rec := &recorder{err: errors.New("no display")}
	_, err = plotInterpreter(rec).Eval("fplot('x')")
	wantFault(t, err, "no display")
}

func Test_Fplot_RendererFunc(t *testing.T) {
	n := 0
	ip := plotInterpreter(RendererFunc(func(*Figure) error { n++; return nil }))
	mustEval(t, ip, "fplot('x')")
	if n != 1 {
		t.Fatalf("renderer calls = %d", n)
	}
}

func Test_Figure_Bounds(t *testing.T) {
	fig := &Figure{
		XLim: [2]float64{2, -2},
		Curves: []Curve{
			{Y: []float64{1, math.NaN(), 3}},
			{Y: []float64{math.Inf(1), -1}},
		},
	}
	xmin, xmax, ymin, ymax := fig.Bounds()
	if xmin != -2 || xmax != 2 || ymin != -1 || ymax != 3 {
		t.Fatalf("bounds = %v %v %v %v", xmin, xmax, ymin, ymax)
	}

	fig.YLim = &[2]float64{0, 10}
	if _, _, ymin, ymax = fig.Bounds(); ymin != 0 || ymax != 10 {
		t.Fatalf("clamped y = %v %v", ymin, ymax)
	}

	flat := &Figure{XLim: [2]float64{1, 1}, Curves: []Curve{{Y: []float64{5, 5}}}}
	xmin, xmax, ymin, ymax = flat.Bounds()
	if xmax-xmin != 1 || ymax-ymin != 1 {
		t.Fatalf("degenerate bounds = %v %v %v %v", xmin, xmax, ymin, ymax)
	}
}
