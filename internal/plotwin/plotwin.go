package plotwin

import (
	"sync"

	"github.com/pb1729/pycalc"
)

// Window is a pycalc.Renderer backed by a single desktop window. The window
// needs the main goroutine, so the REPL itself runs through Window.Run.
type Window struct {
	figs chan *pycalc.Figure
	done chan struct{}
	once sync.Once
	err  error
}

// New returns a Window; nothing is opened until the first figure arrives.
func New() *Window {
	return &Window{
		figs: make(chan *pycalc.Figure),
		done: make(chan struct{}),
	}
}

// finish marks the window unavailable; err is what later Show calls report.
func (w *Window) finish(err error) {
	w.once.Do(func() {
		w.err = err
		close(w.done)
	})
}

var _ pycalc.Renderer = (*Window)(nil)
