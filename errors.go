// errors.go: the evaluation fault type and caret-snippet rendering
//
// What this file does
// -------------------
// Every failure inside the calculator (bad token, malformed expression,
// unknown name, type mismatch, bad formula index, renderer failure) surfaces
// as a single Go error type, `*Error`. The REPL engine catches it at the
// Execute boundary and prints `Error()`; it never terminates the session.
//
// Lexical and parse errors carry a position and are rendered with a
// Python-style snippet pointing at the offending column:
//
//	PARSE ERROR at 1:4: expected expression after '+'
//
//	   1 | 2 +
//	     |    ^
//
// Runtime errors are rendered as a single line ("RUNTIME ERROR: ...") since the
// position of a runtime fault inside a one-line calculation adds nothing.
//
// Scope of the public API
// -----------------------
// Public:   `Error`, `DiagKind`, `WrapErrorWithSource(err, src) error`.
// Private:  caret-snippet renderer and tiny helpers.
package pycalc

import (
	"errors"
	"fmt"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// DiagKind classifies an evaluation fault. The REPL renders all kinds the same
// way; the kind only selects the header of the message.
type DiagKind int

const (
	DiagLex DiagKind = iota
	DiagParse
	DiagRuntime
)

func (k DiagKind) header() string {
	switch k {
	case DiagLex:
		return "LEXICAL ERROR"
	case DiagParse:
		return "PARSE ERROR"
	default:
		return "RUNTIME ERROR"
	}
}

// Error is the one fault type of the engine. Line and Col are 1-based; zero
// means "no position".
type Error struct {
	Kind DiagKind
	Msg  string
	Line int
	Col  int

	snippet string // rendered by WrapErrorWithSource
}

func (e *Error) Error() string {
	if e.snippet != "" {
		return e.snippet
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind.header(), e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind.header(), e.Msg)
}

// WrapErrorWithSource returns err with a caret-annotated snippet of src
// attached when err is a positioned lexical or parse *Error. Runtime errors
// and foreign errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.Kind == DiagRuntime || e.Line <= 0 {
		return e
	}
	out := *e
	out.snippet = prettyErrorString(src, e.Kind.header(), e.Line, e.Col, e.Msg)
	return &out
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind DiagKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

// prettyErrorString builds a snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "\n%4d | %s", line+1, lines[line])
	}
	return b.String()
}
