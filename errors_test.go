package pycalc

import (
	"errors"
	"strings"
	"testing"
)

func Test_Errors_Snippet_PointsAtColumn(t *testing.T) {
	_, err := ParseSExpr("2 +")
	w := WrapErrorWithSource(err, "2 +")
	want := "PARSE ERROR at 1:4: expected expression after '+'\n\n" +
		"   1 | 2 +\n" +
		"     |    ^"
	if w.Error() != want {
		t.Fatalf("\nwant:\n%s\ngot:\n%s", want, w.Error())
	}
}

func Test_Errors_Snippet_ShowsNeighbourLines(t *testing.T) {
	src := "a = 1\nb = $\nc = 3"
	_, err := ParseSExpr(src)
	if !IsKind(err, DiagLex) {
		t.Fatalf("want lex error, got %v", err)
	}
	msg := WrapErrorWithSource(err, src).Error()
	for _, want := range []string{"LEXICAL ERROR at 2:5", "   1 | a = 1", "   2 | b = $", "   3 | c = 3"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("snippet %q lacks %q", msg, want)
		}
	}
}

func Test_Errors_Runtime_IsSingleLine(t *testing.T) {
	e := &Error{Kind: DiagRuntime, Msg: "division by zero"}
	if e.Error() != "RUNTIME ERROR: division by zero" {
		t.Fatalf("got %q", e.Error())
	}
	if WrapErrorWithSource(e, "1/0") != error(e) {
		t.Fatalf("runtime errors must pass through unchanged")
	}
}

func Test_Errors_Wrap_LeavesOriginalUntouched(t *testing.T) {
	e := &Error{Kind: DiagParse, Msg: "boom", Line: 1, Col: 1}
	w := WrapErrorWithSource(e, "x")
	if e.Error() != "PARSE ERROR at 1:1: boom" {
		t.Fatalf("original mutated: %q", e.Error())
	}
	if !strings.Contains(w.Error(), "   1 | x") {
		t.Fatalf("wrapped = %q", w.Error())
	}
}

func Test_Errors_ForeignErrors_PassThrough(t *testing.T) {
	plain := errors.New("plain")
	if WrapErrorWithSource(plain, "x") != plain {
		t.Fatalf("foreign error was rewritten")
	}
	if IsKind(plain, DiagRuntime) {
		t.Fatalf("foreign error reported as runtime fault")
	}
}

func Test_Errors_ClampsPosition(t *testing.T) {
	msg := prettyErrorString("x", "PARSE ERROR", 9, 0, "m")
	if !strings.HasPrefix(msg, "PARSE ERROR at 1:1: m") {
		t.Fatalf("got %q", msg)
	}
}
