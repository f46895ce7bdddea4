//go:build !cgo

package plotwin

import (
	"errors"

	"github.com/pb1729/pycalc"
)

func (w *Window) Show(_ *pycalc.Figure) error {
	return errors.New("plot window requires cgo (build/run with CGO_ENABLED=1)")
}

// Run calls repl directly; there is no window to serve.
func (w *Window) Run(repl func() error) error {
	err := repl()
	w.finish(nil)
	return err
}
