// session.go: the REPL engine.
//
// The engine owns one Session and drives it one loop iteration at a time:
//
//	MULTI:  prompt "\t| "; "quit" ends the process, "=}" switches back to
//	        SINGLE (keeping the buffer), anything else is buffered verbatim.
//	SINGLE: a non-empty buffer is joined with "\n" and becomes this
//	        iteration's input (and is cleared); otherwise prompt "pycalc> ".
//	        "quit" ends, a blank line does nothing, "{=" switches to MULTI,
//	        everything else is executed.
//
// A finished block therefore runs on the SINGLE pass after "=}", before the
// next prompt is issued.
//
// Execute classifies the input: text containing a newline or an '=' is a
// statement (run for effect, nothing printed), anything else is an
// expression (printed, and kept in ans unless it is text). Faults are printed
// and leave the session exactly as it was.
package pycalc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"
)

// Prompts and control tokens. Control tokens match whole lines exactly.
const (
	PromptSingle = "pycalc> "
	PromptMulti  = "\t| "

	tokQuit  = "quit"
	tokOpen  = "{="
	tokClose = "=}"
)

// Names under which the session is visible to user code.
const (
	bindAns     = "ans"
	bindHistory = "history"
	bindMult    = "mult"
	bindCode    = "code"
)

// Mode is the engine state.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "MULTI"
	}
	return "SINGLE"
}

// Session is the per-run REPL state.
type Session struct {
	Ans     Value
	History []string
	Mode    Mode
	Pending []string
}

// NewSession returns the initial state: ans = 0, empty history, SINGLE.
func NewSession() *Session {
	return &Session{Ans: Int(0), Mode: ModeSingle}
}

// LineReader supplies one line of input per call. io.EOF ends the session;
// the returned line carries no trailing newline.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// LineReaderFunc adapts a function to LineReader.
type LineReaderFunc func(prompt string) (string, error)

func (f LineReaderFunc) Prompt(prompt string) (string, error) { return f(prompt) }

// Engine runs the read-eval-print loop over an Interpreter.
type Engine struct {
	// Out receives results; Err receives fault descriptions (Out when nil).
	Out io.Writer
	Err io.Writer

	ip   *Interpreter
	in   LineReader
	sess *Session
}

// NewEngine returns an engine with a fresh Session whose bindings are already
// published into ip.Global.
func NewEngine(ip *Interpreter, in LineReader, out io.Writer) *Engine {
	e := &Engine{Out: out, ip: ip, in: in, sess: NewSession()}
	e.publish()
	return e
}

// Session exposes the live session state.
func (e *Engine) Session() *Session { return e.sess }

// Interpreter returns the evaluator the engine executes against.
func (e *Engine) Interpreter() *Interpreter { return e.ip }

// Run loops until quit or end of input. A read failure other than io.EOF is
// returned.
func (e *Engine) Run() error {
	for {
		more, err := e.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Step runs one loop iteration and reports whether the loop should go on.
func (e *Engine) Step() (bool, error) {
	s := e.sess
	if s.Mode == ModeMulti {
		line, err := e.in.Prompt(PromptMulti)
		if err != nil {
			return e.readFailed(err)
		}
		switch line {
		case tokQuit:
			log.LogVf("quit in MULTI, dropping %d buffered line(s)", len(s.Pending))
			return false, nil
		case tokClose:
			s.Mode = ModeSingle
		default:
			s.Pending = append(s.Pending, line)
		}
		return true, nil
	}

	var inp string
	if len(s.Pending) > 0 {
		inp = strings.Join(s.Pending, "\n")
		s.Pending = nil
	} else {
		line, err := e.in.Prompt(PromptSingle)
		if err != nil {
			return e.readFailed(err)
		}
		inp = line
	}

	switch {
	case inp == tokQuit:
		return false, nil
	case strings.TrimSpace(inp) == "":
	case inp == tokOpen:
		s.Mode = ModeMulti
		s.Pending = nil
	default:
		e.Execute(inp)
	}
	return true, nil
}

func (e *Engine) readFailed(err error) (bool, error) {
	if errors.Is(err, io.EOF) {
		log.LogVf("end of input")
		return false, nil
	}
	return false, err
}

// IsStatement reports whether src is executed for effect rather than
// evaluated: it spans several lines or contains an '=' anywhere, comparisons
// and string literals included.
func IsStatement(src string) bool {
	return strings.ContainsAny(src, "\n=")
}

// Execute runs one input behind the fault boundary and reports whether it
// succeeded. On failure the description is printed and the session (and its
// published bindings) are left as they were.
func (e *Engine) Execute(inp string) bool {
	s := e.sess
	e.publish()

	if IsStatement(inp) {
		log.LogVf("statement: %q", inp)
		if err := e.ip.Exec(inp); err != nil {
			e.fault(err)
			return false
		}
		e.pullBack()
	} else {
		log.LogVf("expression: %q", inp)
		v, err := e.ip.Eval(inp)
		if err != nil {
			e.fault(err)
			return false
		}
		fmt.Fprintln(e.Out, FormatValue(v))
		if v.Category() != CatText {
			s.Ans = v
		}
	}
	s.History = append(s.History, inp)
	e.publish()
	return true
}

func (e *Engine) fault(err error) {
	w := e.Err
	if w == nil {
		w = e.Out
	}
	fmt.Fprintln(w, err.Error())
	e.publish()
}

// publish writes the session into Global so user code can read and rebind it.
func (e *Engine) publish() {
	s, g := e.sess, e.ip.Global
	g.Define(bindAns, detach(s.Ans))
	g.Define(bindHistory, StrList(s.History))
	g.Define(bindMult, Bool(s.Mode == ModeMulti))
	g.Define(bindCode, StrList(s.Pending))
}

// pullBack adopts whatever a statement left in the session bindings.
func (e *Engine) pullBack() {
	s, g := e.sess, e.ip.Global
	if v, ok := g.Lookup(bindAns); ok {
		s.Ans = v
	}
	if v, ok := g.Lookup(bindHistory); ok {
		if h, ok := stringsOf(v); ok {
			s.History = h
		} else {
			log.Warnf("ignoring non-string-list value bound to %s: %s", bindHistory, v.Tag)
		}
	}
	if v, ok := g.Lookup(bindMult); ok {
		on, err := e.ip.guard(func() Value { return Bool(truthy(v)) })
		if err != nil {
			log.Warnf("ignoring %s: %v", bindMult, err)
		} else if on.Data.(bool) {
			s.Mode = ModeMulti
		}
	}
	if v, ok := g.Lookup(bindCode); ok {
		if c, ok := stringsOf(v); ok {
			s.Pending = c
		} else {
			log.Warnf("ignoring non-string-list value bound to %s: %s", bindCode, v.Tag)
		}
	}
}

// detach copies the top level of arrays and lists so in-place edits through
// the binding do not reach the session until a statement succeeds.
func detach(v Value) Value {
	switch v.Tag {
	case VTArray:
		return Arr(append([]float64(nil), v.Data.([]float64)...))
	case VTCArray:
		return CArr(append([]complex128(nil), v.Data.([]complex128)...))
	case VTList:
		return List(append([]Value(nil), v.Data.([]Value)...))
	}
	return v
}

func stringsOf(v Value) ([]string, bool) {
	if v.Tag != VTList {
		return nil, false
	}
	items := v.Data.([]Value)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Tag != VTStr {
			return nil, false
		}
		out = append(out, it.Data.(string))
	}
	return out, true
}
