package pycalc

import (
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) S {
	t.Helper()
	ast, err := ParseSExpr(src)
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return ast
}

func mustParseExpr(t *testing.T, src string) S {
	t.Helper()
	ast, err := ParseExpr(src)
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return ast
}

func wantAST(t *testing.T, got, want S) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("\nwant: %#v\ngot:  %#v", want, got)
	}
}

func Test_Parser_Precedence(t *testing.T) {
	got := mustParseExpr(t, "1 + 2 * 3")
	wantAST(t, got, L("binop", "+", L("int", int64(1)), L("binop", "*", L("int", int64(2)), L("int", int64(3)))))
}

func Test_Parser_Power_RightAssoc_And_UnaryMinus(t *testing.T) {
	got := mustParseExpr(t, "-2 ** 3 ** 2")
	want := L("unop", "-",
		L("binop", "**", L("int", int64(2)),
			L("binop", "**", L("int", int64(3)), L("int", int64(2)))))
	wantAST(t, got, want)

	got = mustParseExpr(t, "2 ** -1")
	wantAST(t, got, L("binop", "**", L("int", int64(2)), L("unop", "-", L("int", int64(1)))))
}

func Test_Parser_Comparison_Below_Arithmetic(t *testing.T) {
	got := mustParseExpr(t, "a + 1 == b and not c")
	want := L("binop", "and",
		L("binop", "==", L("binop", "+", L("id", "a"), L("int", int64(1))), L("id", "b")),
		L("unop", "not", L("id", "c")))
	wantAST(t, got, want)
}

func Test_Parser_Call_Index_List(t *testing.T) {
	got := mustParseExpr(t, "cross(r, p)[0]")
	want := L("idx",
		L("call", L("id", "cross"), L("args", L("id", "r"), L("id", "p")), L("kwargs")),
		L("int", int64(0)))
	wantAST(t, got, want)

	got = mustParseExpr(t, "[1, 2.5, 'x',]")
	wantAST(t, got, L("list", L("int", int64(1)), L("num", 2.5), L("str", "x")))
}

func Test_Parser_Call_Kwargs(t *testing.T) {
	got := mustParseExpr(t, "fplot('x**2', xlims=[0, 2])")
	want := L("call", L("id", "fplot"),
		L("args", L("str", "x**2")),
		L("kwargs", L("kw", "xlims", L("list", L("int", int64(0)), L("int", int64(2))))))
	wantAST(t, got, want)

	if _, err := ParseExpr("f(a=1, 2)"); err == nil {
		t.Fatalf("expected error for positional after keyword")
	}
}

func Test_Parser_Assign_Chained(t *testing.T) {
	got := mustParse(t, "a = b = 0")
	wantAST(t, got, L("block", L("assign", L("id", "a"), L("int", int64(0)), L("id", "b"))))
}

func Test_Parser_Assign_Index_And_Aug(t *testing.T) {
	got := mustParse(t, "v[1] = 2; n *= 3")
	want := L("block",
		L("assign", L("idx", L("id", "v"), L("int", int64(1))), L("int", int64(2))),
		L("augassign", "*", L("id", "n"), L("int", int64(3))))
	wantAST(t, got, want)
}

func Test_Parser_FunctionDefinition(t *testing.T) {
	got := mustParse(t, "f(x, y) = x*y")
	want := L("block", L("def", "f", L("params", "x", "y"),
		L("binop", "*", L("id", "x"), L("id", "y"))))
	wantAST(t, got, want)
}

func Test_Parser_Lambda(t *testing.T) {
	got := mustParseExpr(t, "lambda x, y: x + y")
	want := L("lambda", L("params", "x", "y"), L("binop", "+", L("id", "x"), L("id", "y")))
	wantAST(t, got, want)

	got = mustParseExpr(t, "lambda: 1")
	wantAST(t, got, L("lambda", L("params"), L("int", int64(1))))
}

func Test_Parser_Block_MultiLine(t *testing.T) {
	got := mustParse(t, "a = 1\n\nb = 2\n")
	want := L("block",
		L("assign", L("id", "a"), L("int", int64(1))),
		L("assign", L("id", "b"), L("int", int64(2))))
	wantAST(t, got, want)

	wantAST(t, mustParse(t, ""), L("block"))
}

func Test_Parser_Errors(t *testing.T) {
	cases := map[string]string{
		"2 +":       "expected expression after '+'",
		"x =":       "expected expression after '='",
		"(1 + 2":    "expected ')'",
		"1 + 2 = 3": "cannot assign to expression",
		"[1, 2":     "expected ']' to close list",
		"1 2":       "unexpected integer",
	}
	for src, want := range cases {
		_, err := ParseSExpr(src)
		if err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
		if !IsKind(err, DiagParse) {
			t.Fatalf("want DiagParse for %q, got %v", src, err)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error for %q = %q, want it to mention %q", src, err.Error(), want)
		}
	}
}

func Test_Parser_ParseExpr_RejectsStatements(t *testing.T) {
	if _, err := ParseExpr("x = 1"); err == nil {
		t.Fatalf("ParseExpr accepted an assignment")
	}
}
