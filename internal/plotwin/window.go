//go:build cgo

package plotwin

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pb1729/pycalc"
)

var (
	background = color.RGBA{0x18, 0x18, 0x1c, 0xff}
	axisColor  = color.RGBA{0x70, 0x70, 0x78, 0xff}
	frameColor = color.RGBA{0xc0, 0xc0, 0xc8, 0xff}
)

// Show hands fig to the window and returns once the window has taken it.
func (w *Window) Show(fig *pycalc.Figure) error {
	select {
	case w.figs <- fig:
		return nil
	case <-w.done:
		if w.err != nil {
			return w.err
		}
		return errors.New("plot window is closed")
	}
}

// Run calls repl on a separate goroutine and keeps the main goroutine for the
// window, which opens on the first figure. Closing the window minimizes it;
// the next figure brings it back. Run returns repl's result once repl is done.
func (w *Window) Run(repl func() error) error {
	errc := make(chan error, 1)
	go func() {
		err := repl()
		w.finish(nil)
		errc <- err
	}()

	var first *pycalc.Figure
	select {
	case first = <-w.figs:
	case err := <-errc:
		return err
	}

	ebiten.SetWindowTitle("pycalc plot")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(&plotGame{w: w, fig: first}); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Errf("plot window failed: %v", err)
		w.finish(fmt.Errorf("plot window failed: %w", err))
	}
	return <-errc
}

type plotGame struct {
	w   *Window
	fig *pycalc.Figure
}

func (g *plotGame) Update() error {
	select {
	case <-g.w.done:
		return ebiten.Termination
	case fig := <-g.w.figs:
		g.fig = fig
		if ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
	default:
	}
	if ebiten.IsWindowBeingClosed() {
		ebiten.MinimizeWindow()
	}
	return nil
}

func (g *plotGame) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	b := screen.Bounds()
	f := newFrame(g.fig, b.Dx(), b.Dy())

	if sx, ok := f.yAxis(); ok {
		vector.StrokeLine(screen, sx, margin, sx, float32(f.h-margin), 1, axisColor, false)
	}
	if sy, ok := f.xAxis(); ok {
		vector.StrokeLine(screen, margin, sy, float32(f.w-margin), sy, 1, axisColor, false)
	}
	vector.StrokeRect(screen, margin, margin, float32(f.w-2*margin), float32(f.h-2*margin), 1, frameColor, false)

	plot := screen.SubImage(image.Rect(margin, margin, f.w-margin, f.h-margin)).(*ebiten.Image)
	for i, c := range g.fig.Curves {
		col := curveColor(i)
		for _, seg := range f.segments(c) {
			for j := 1; j < len(seg); j++ {
				vector.StrokeLine(plot, seg[j-1].X, seg[j-1].Y, seg[j].X, seg[j].Y, 1.5, col, true)
			}
		}
		y := margin + 4 + 14*i
		vector.StrokeLine(screen, float32(f.w-margin-150), float32(y+7), float32(f.w-margin-130), float32(y+7), 2, col, true)
		ebitenutil.DebugPrintAt(screen, c.Label, f.w-margin-126, y)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.4g", f.xmin), margin, f.h-margin+4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.4g", f.xmax), f.w-margin-40, f.h-margin+4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.4g", f.ymax), 2, margin-6)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.4g", f.ymin), 2, f.h-margin-10)
}

func (g *plotGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
