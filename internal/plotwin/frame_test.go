package plotwin

import (
	"math"
	"testing"

	"github.com/pb1729/pycalc"
)

func Test_Frame_CornersMapToMargins(t *testing.T) {
	fig := &pycalc.Figure{
		XLim:   [2]float64{0, 2},
		Curves: []pycalc.Curve{{X: []float64{0, 2}, Y: []float64{-1, 1}}},
	}
	f := newFrame(fig, width, height)

	lo := f.toScreen(0, -1)
	if lo.X != margin || lo.Y != height-margin {
		t.Fatalf("bottom-left = %+v", lo)
	}
	hi := f.toScreen(2, 1)
	if hi.X != width-margin || hi.Y != margin {
		t.Fatalf("top-right = %+v", hi)
	}
}

func Test_Frame_SegmentsBreakOnNaN(t *testing.T) {
	fig := &pycalc.Figure{XLim: [2]float64{0, 4}}
	c := pycalc.Curve{
		X: []float64{0, 1, 2, 3, 4},
		Y: []float64{0, 1, math.NaN(), 3, 4},
	}
	fig.Curves = []pycalc.Curve{c}
	segs := newFrame(fig, width, height).segments(c)
	if len(segs) != 2 {
		t.Fatalf("want 2 segments, got %d", len(segs))
	}
	if len(segs[0]) != 2 || len(segs[1]) != 2 {
		t.Fatalf("segment sizes = %d, %d", len(segs[0]), len(segs[1]))
	}
}

func Test_Frame_IsolatedPointDropped(t *testing.T) {
	c := pycalc.Curve{
		X: []float64{0, 1, 2},
		Y: []float64{math.Inf(1), 1, math.NaN()},
	}
	fig := &pycalc.Figure{XLim: [2]float64{0, 2}, Curves: []pycalc.Curve{c}}
	if segs := newFrame(fig, width, height).segments(c); len(segs) != 0 {
		t.Fatalf("want no segments, got %v", segs)
	}
}

func Test_Frame_Axes(t *testing.T) {
	fig := &pycalc.Figure{XLim: [2]float64{1, 2}, YLim: &[2]float64{-1, 1}}
	f := newFrame(fig, width, height)
	if _, ok := f.yAxis(); ok {
		t.Fatalf("x = 0 is outside [1, 2]")
	}
	sy, ok := f.xAxis()
	if !ok || sy != height/2 {
		t.Fatalf("y = 0 row = %v (%v), want %d", sy, ok, height/2)
	}
}

func Test_Palette_Cycles(t *testing.T) {
	if curveColor(0) != curveColor(len(palette)) {
		t.Fatalf("palette does not cycle")
	}
}

func Test_Window_ShowAfterFinish(t *testing.T) {
	w := New()
	w.finish(nil)
	if err := w.Show(&pycalc.Figure{}); err == nil {
		t.Fatalf("expected an error once the window is finished")
	}
}
